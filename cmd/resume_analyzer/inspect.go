package main

import (
	"fmt"

	"github.com/jonathan/resume-analyzer/internal/resumefile"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show what would be uploaded for a resume file",
	Long:  "Show the name, size, detected type, page count and extractable text length of a resume file. Works without logging in.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, args []string) error {
	info, err := resumefile.Inspect(args[0], app.cfg.MaxUploadBytes())
	if info != nil {
		app.printer.PrintFileInfo(info)
	}
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", args[0], err)
	}
	return nil
}
