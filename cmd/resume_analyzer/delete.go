package main

import (
	"fmt"
	"strconv"

	"github.com/jonathan/resume-analyzer/internal/guard"
	"github.com/spf13/cobra"
)

var deleteCmd = withAccess(&cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a resume, or an analysis with --analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}, guard.Protected)

var deleteAnalysis bool

func init() {
	deleteCmd.Flags().BoolVar(&deleteAnalysis, "analysis", false, "Treat <id> as an analysis ID")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	kind := "resume"
	if deleteAnalysis {
		kind = "analysis"
		err = app.client.DeleteAnalysis(cmd.Context(), id)
	} else {
		err = app.client.DeleteResume(cmd.Context(), id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", kind, id, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s #%d\n", kind, id)
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", s)
	}
	return id, nil
}
