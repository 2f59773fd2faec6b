package main

import (
	"fmt"

	"github.com/jonathan/resume-analyzer/internal/guard"
	"github.com/spf13/cobra"
)

var resumesCmd = withAccess(&cobra.Command{
	Use:   "resumes",
	Short: "List your uploaded resumes",
	Args:  cobra.NoArgs,
	RunE:  runResumes,
}, guard.Protected)

func init() {
	rootCmd.AddCommand(resumesCmd)
}

func runResumes(cmd *cobra.Command, _ []string) error {
	resumes, err := app.client.MyResumes(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list resumes: %w", err)
	}
	app.printer.PrintResumes(resumes)
	return nil
}
