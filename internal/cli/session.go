package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mcoot/qrinvite/internal/i18n"
	"github.com/mcoot/qrinvite/internal/model"
	"github.com/mcoot/qrinvite/internal/session"
)

func newLoginCmd() *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to this tab",
		RunE: func(cmd *cobra.Command, args []string) error {
			result := tab.Session.Login(cmd.Context(), user, pass)
			if !result.Success {
				return errors.New(result.Reason)
			}

			out.Print(identityResult(*result.Identity))
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "Username (required)")
	cmd.Flags().StringVarP(&pass, "pass", "p", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return routed(cmd, session.LoginPath)
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out of this tab",
		RunE: func(cmd *cobra.Command, args []string) error {
			tab.Session.Logout(cmd.Context())
			out.PrintMessage(i18n.T(i18n.LoggedOutKey))
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, ok := tab.Session.CurrentIdentity(cmd.Context())
			if !ok {
				return &RedirectError{Path: session.LoginPath}
			}

			out.Print(identityResult(*identity))
			return nil
		},
	}
	return routed(cmd, session.DashboardPath)
}

func identityResult(identity model.Identity) IdentityResult {
	return IdentityResult{
		Username:  identity.Username,
		Name:      identity.DisplayName,
		LoginTime: identity.LoginTime,
		Greeting:  i18n.T(i18n.GreetingKey, identity.DisplayName),
	}
}
