package main

import (
	"fmt"
	"time"

	"github.com/jonathan/resume-analyzer/internal/dashboard"
	"github.com/jonathan/resume-analyzer/internal/guard"
	"github.com/spf13/cobra"
)

var dashboardCmd = withAccess(&cobra.Command{
	Use:   "dashboard",
	Short: "Show your profile, resumes and best job matches",
	Args:  cobra.NoArgs,
	RunE:  runDashboard,
}, guard.Protected)

var dashboardTop int

func init() {
	dashboardCmd.Flags().IntVar(&dashboardTop, "top", 3, "Number of best-matching jobs to show")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	d, err := dashboard.Load(cmd.Context(), app.client, dashboard.Options{
		TopJobs: dashboardTop,
		Now:     time.Now(),
		Verbose: app.cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}
	app.printer.PrintDashboard(d)
	return nil
}
