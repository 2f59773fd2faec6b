package main

import (
	"time"

	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/session"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the API URL and whether you are logged in",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	status := observability.Status{
		APIURL: app.cfg.APIURL,
		Now:    time.Now(),
	}
	if fs, ok := app.session.Store().(*session.FileStore); ok {
		status.TokenFile = fs.Path()
	}

	token, err := app.session.Token()
	if err != nil {
		status.TokenErr = err
	}
	if token != "" {
		status.Authenticated = true
		status.Token, status.TokenErr = session.InspectToken(token)
	}

	app.printer.PrintStatus(status)
	return nil
}
