package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mcoot/qrinvite/internal/i18n"
	"github.com/mcoot/qrinvite/internal/invites"
	"github.com/mcoot/qrinvite/internal/model"
	"github.com/mcoot/qrinvite/internal/pages"
	"github.com/mcoot/qrinvite/internal/session"
)

func newInviteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invite",
		Short: "Invite commands",
	}

	cmd.AddCommand(newInviteCreateCmd())
	cmd.AddCommand(newInviteListCmd())
	cmd.AddCommand(newInviteGetCmd())
	cmd.AddCommand(newInviteValidateCmd())

	return cmd
}

func newInviteCreateCmd() *cobra.Command {
	var data, outDir string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an invite and its QR code",
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := tab.Creator.Create(cmd.Context(), pages.CreateRequest{Data: data})
			if err != nil {
				return newActionError(err, i18n.T(i18n.GenerateFailedKey))
			}

			result := CreateResult{
				InviteCode: string(created.Invite.InviteCode),
				InviteID:   created.Invite.InviteID,
				Data:       created.Invite.Data,
				ElapsedMS:  float64(created.Elapsed.Microseconds()) / 1000,
			}
			if share, err := tab.Creator.ShareText(); err == nil {
				result.Share = share
			}
			if outDir != "" {
				path, err := tab.Creator.Download(outDir)
				if err != nil {
					return fmt.Errorf("failed to save QR code: %w", err)
				}
				result.File = path
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "Invite data (required)")
	cmd.Flags().StringVar(&outDir, "out", "", "Directory to save the QR code PNG into")
	_ = cmd.MarkFlagRequired("data")

	return routed(cmd, session.CreatePath)
}

func newInviteListCmd() *cobra.Command {
	var search, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invites",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := invites.ParseStatusFilter(status)
			if err != nil {
				return err
			}

			view := tab.Lister.Refresh(cmd.Context())
			if view.Mode == pages.ListError {
				return &actionError{msg: view.Message, err: tab.Invites.Err()}
			}
			view = tab.Lister.Filter(search, filter)

			out.Print(ListResult{
				Invites: view.Invites,
				Counts:  view.Counts,
				Search:  view.Text,
				Status:  string(view.Status),
				Message: view.Message,
			})
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Match invite code or data (case-insensitive)")
	cmd.Flags().StringVar(&status, "status", "all", "Filter by status: all, validated, pending")

	return routed(cmd, session.ListPath)
}

func newInviteGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <code>",
		Short: "Show one invite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := app.API.GetInvite(cmd.Context(), model.InviteCode(args[0]))
			if err != nil {
				return newActionError(err, i18n.T(i18n.InviteNotFoundKey))
			}

			out.Print(*inv)
			return nil
		},
	}
	return routed(cmd, session.ListPath)
}

func newInviteValidateCmd() *cobra.Command {
	var contentType string

	cmd := &cobra.Command{
		Use:   "validate <image>",
		Short: "Validate a QR code image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			verdict, err := tab.Validator.ValidateFile(cmd.Context(), pages.FileUpload{
				Filename:    filepath.Base(args[0]),
				ContentType: contentType,
				Content:     content,
			})
			if err != nil {
				return newActionError(err, i18n.T(i18n.InvalidQRCodeKey))
			}

			out.Print(ValidateResult{
				Valid:       verdict.Outcome == pages.OutcomeValid,
				InviteCode:  string(verdict.InviteCode),
				Data:        verdict.Data,
				IsValidated: verdict.IsValidated,
				Message:     verdict.Message,
				CheckedAt:   i18n.FormatDate(verdict.CheckedAt),
				ElapsedMS:   float64(verdict.Elapsed.Microseconds()) / 1000,
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&contentType, "content-type", "", "Content type of the image (detected when omitted)")

	return routed(cmd, session.ValidatePath)
}

// actionError carries the message shown to the user for a failed page action
type actionError struct {
	msg string
	err error
}

func (e *actionError) Error() string { return e.msg }

func (e *actionError) Unwrap() error { return e.err }

func newActionError(err error, fallback string) error {
	msg := pages.UserMessage(err, fallback)
	if errors.Is(err, pages.ErrInvalidInput) {
		msg = err.Error()
	}
	return &actionError{msg: msg, err: err}
}
