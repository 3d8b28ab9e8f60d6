package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/qrinvite/internal/pages"
	"github.com/mcoot/qrinvite/internal/session"
)

func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show invite statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := tab.Dashboard.Stats(cmd.Context())

			out.Print(StatsResult{
				Counts: stats.Counts,
				Error:  stats.State == pages.StatsError,
			})
			return nil
		},
	}
	return routed(cmd, session.DashboardPath)
}
