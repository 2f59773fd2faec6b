package main

import (
	"fmt"
	"log"

	"github.com/jonathan/resume-analyzer/internal/guard"
	"github.com/jonathan/resume-analyzer/internal/resumefile"
	"github.com/spf13/cobra"
)

var uploadCmd = withAccess(&cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a resume (.pdf, .doc or .docx)",
	Long:  "Check a resume file locally (type, size, extractable text) and upload it. Use --dry-run to only run the check.",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpload,
}, guard.Protected)

var uploadDryRun bool

func init() {
	uploadCmd.Flags().BoolVar(&uploadDryRun, "dry-run", false, "Check the file without uploading it")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	info, err := preflightResume(args[0])
	if err != nil {
		return err
	}
	app.printer.PrintFileInfo(info)
	if uploadDryRun {
		return nil
	}

	resume, err := app.client.UploadResumeFile(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to upload resume: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s (#%d)\n", resume.FileName, resume.ID)
	return nil
}

// preflightResume runs resumefile.Inspect against the configured upload limit.
func preflightResume(path string) (*resumefile.Info, error) {
	info, err := resumefile.Inspect(path, app.cfg.MaxUploadBytes())
	if err != nil {
		return nil, fmt.Errorf("cannot upload %s: %w", path, err)
	}
	if app.cfg.Verbose {
		for _, w := range info.Warnings {
			log.Printf("[VERBOSE] %s: %s", info.Name, w)
		}
	}
	return info, nil
}
