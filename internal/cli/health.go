package cli

import (
	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check API health",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.API.Health(cmd.Context())
			if err != nil {
				return err
			}

			out.Print(HealthResult{Status: result.Status})
			return nil
		},
	}
}
