package main

import (
	"fmt"

	"github.com/jonathan/resume-analyzer/internal/guard"
	"github.com/jonathan/resume-analyzer/internal/history"
	"github.com/spf13/cobra"
)

var historyCmd = withAccess(&cobra.Command{
	Use:   "history",
	Short: "List your resumes with their past analyses",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}, guard.Protected)

var (
	historyAnalyses    bool
	historyConcurrency int
)

func init() {
	historyCmd.Flags().BoolVarP(&historyAnalyses, "analyses", "a", true, "Fetch the analysis history of each resume")
	historyCmd.Flags().IntVar(&historyConcurrency, "concurrency", history.DefaultConcurrency, "Maximum parallel history requests")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyConcurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1")
	}

	entries, err := history.Load(cmd.Context(), app.client, history.Options{
		WithAnalyses: historyAnalyses,
		Concurrency:  historyConcurrency,
	})
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	app.printer.PrintHistory(entries)
	return nil
}
