// Package cli implements the smecert command line client. It talks to the
// same upstream REST API as the web frontend, with the token pair stored in
// a credentials file instead of a session row.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/me/smecert/internal/api"
	"github.com/me/smecert/internal/logging"
	"github.com/me/smecert/internal/token"
)

var (
	flagAPI       string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
	tokens token.Source
	client *api.Client
)

// defaultAPI returns the default API URL, checking SMECERT_API_URL first.
func defaultAPI() string {
	if s := os.Getenv("SMECERT_API_URL"); s != "" {
		return s
	}
	return "http://localhost:8000/api"
}

// NewRootCmd creates the root cobra command for the smecert CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "smecert",
		Short: "smecert is a client for the event attendance and certificate service",
		Long:  "smecert manages events, participant imports and certificates against the SMEC API.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.NewLogger(logging.ParseLevel(flagLogLevel), flagLogFormat)

			src, err := token.DefaultFileSource()
			if err != nil {
				return fmt.Errorf("locate credentials: %w", err)
			}
			tokens = src
			client = api.NewClient(flagAPI, tokens, logger)
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagAPI, "api", defaultAPI(), "API base URL (or SMECERT_API_URL env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newEventsCmd(),
		newImportCmd(),
		newValidateCmd(),
	)

	return root
}
