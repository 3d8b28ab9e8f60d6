package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/qrinvite/internal/factory"
	"github.com/mcoot/qrinvite/internal/pages"
	"github.com/mcoot/qrinvite/internal/session"
)

// routeAnnotation names the page a command acts on; the route guard runs
// against it before the command does
const routeAnnotation = "route"

var (
	cfg *Config
	app *factory.App
	tab *pages.Tab
	out *Output
)

// RedirectError is returned when the route guard turns a command away
type RedirectError struct {
	Path string
}

func (e *RedirectError) Error() string {
	if e.Path == session.DashboardPath {
		return "already logged in"
	}
	return "login required: run 'qrinvite login'"
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	defaults := DefaultConfig()
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "qrinvite",
		Short: "CLI client for the QR code invite API",
		Long: `qrinvite is a CLI client for the QR code invite API.

It signs in against the built-in credential table, creates invites with
their QR codes, lists and filters invites, and validates QR images. The
session is kept per tab in the session directory.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := LoadConfig(cmd, configFile)
			if err != nil {
				return err
			}
			cfg = loaded
			out = NewOutput(cfg.Output, cmd.OutOrStdout())

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			app, err = factory.New(factory.Config{
				APIURL:      cfg.APIURL,
				Logger:      logger,
				StorageType: factory.StorageTypeFile,
				FileDir:     cfg.SessionDir,
			})
			if err != nil {
				return err
			}

			var redirect string
			tab = app.NewTab(cfg.Tab, session.NavigatorFunc(func(path string) {
				redirect = path
			}))

			route := cmd.Annotations[routeAnnotation]
			if route != "" && !tab.Session.EnforceRouteGuard(cmd.Context(), route) {
				return &RedirectError{Path: redirect}
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app == nil {
				return nil
			}
			return app.Close()
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ~/.qrinvite/config.yaml)")
	rootCmd.PersistentFlags().String("api-url", defaults.APIURL, "API base URL (env: QRINVITE_API_URL)")
	rootCmd.PersistentFlags().String("session-dir", defaults.SessionDir, "Session directory (env: QRINVITE_SESSION_DIR)")
	rootCmd.PersistentFlags().String("tab", defaults.Tab, "Session tab name (env: QRINVITE_TAB)")
	rootCmd.PersistentFlags().StringP("output", "o", defaults.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolP("verbose", "v", defaults.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newDashboardCmd())
	rootCmd.AddCommand(newInviteCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	err := NewRootCmd().Execute()
	if err == nil {
		return
	}

	var redirect *RedirectError
	if errors.As(err, &redirect) && redirect.Path == session.DashboardPath {
		fmt.Fprintln(os.Stderr, "Already logged in; run 'qrinvite logout' first")
		return
	}
	os.Exit(1)
}

// routed marks cmd as acting on page path
func routed(cmd *cobra.Command, path string) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[routeAnnotation] = path
	return cmd
}
