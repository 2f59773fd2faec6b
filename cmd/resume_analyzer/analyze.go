package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/guard"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/spf13/cobra"
)

var analyzeCmd = withAccess(&cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against a job description",
	Long: `Upload a resume (--resume) or pick a stored one (--resume-id) and score it against a
job description given inline (--jd), from a file (--jd-file, "-" for stdin) or from a job
posting URL (--jd-url). The result shows the match score, strengths, missing skills and
suggestions.`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}, guard.Protected)

var (
	analyzeResume     string
	analyzeResumeID   int64
	analyzeJD         string
	analyzeJDFile     string
	analyzeJDURL      string
	analyzeUseBrowser bool
	analyzeJSON       bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Resume file to upload and analyze (mutually exclusive with --resume-id)")
	analyzeCmd.Flags().Int64Var(&analyzeResumeID, "resume-id", 0, "ID of an already uploaded resume")
	analyzeCmd.Flags().StringVarP(&analyzeJD, "jd", "j", "", "Job description text")
	analyzeCmd.Flags().StringVar(&analyzeJDFile, "jd-file", "", "Path to a job description text file, or - for stdin")
	analyzeCmd.Flags().StringVar(&analyzeJDURL, "jd-url", "", "URL of a job posting to fetch the description from")
	analyzeCmd.Flags().BoolVar(&analyzeUseBrowser, "use-browser", false, "Use headless browser for JS-rendered job pages (requires Chrome)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the analysis as JSON")

	analyzeCmd.MarkFlagsMutuallyExclusive("resume", "resume-id")
	analyzeCmd.MarkFlagsMutuallyExclusive("jd", "jd-file", "jd-url")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if analyzeResume != "" {
		info, err := preflightResume(analyzeResume)
		if err != nil {
			return err
		}
		if !analyzeJSON {
			app.printer.PrintFileInfo(info)
		}
	}

	jd, meta, err := readJobDescription(ctx, cmd)
	if err != nil {
		return err
	}
	if meta != nil && app.cfg.Verbose && !analyzeJSON {
		app.printer.PrintJobDescription(jd, meta)
	}

	outcome, err := analysis.RunAnalysis(ctx, app.client, analysis.Input{
		ResumePath:     analyzeResume,
		ResumeID:       analyzeResumeID,
		JobDescription: jd,
		Verbose:        app.cfg.Verbose,
	})
	if err != nil {
		return err
	}

	if analyzeJSON {
		data, err := json.MarshalIndent(outcome.Analysis, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal analysis: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if outcome.Uploaded {
		app.printer.Line("Uploaded %s (#%d)", outcome.Resume.FileName, outcome.Resume.ID)
	}
	app.printer.PrintAnalysis(outcome.Analysis, outcome.Result)
	return nil
}

// useBrowser lets an explicit --use-browser, true or false, win over the configured value.
func useBrowser(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("use-browser") {
		return analyzeUseBrowser
	}
	return app.cfg.UseBrowser
}

// readJobDescription returns the cleaned job description from whichever source flag was set.
// No source, or an empty one, yields "" so RunAnalysis reports the missing input.
func readJobDescription(ctx context.Context, cmd *cobra.Command) (string, *ingestion.Metadata, error) {
	var (
		text string
		meta *ingestion.Metadata
		err  error
	)
	switch {
	case analyzeJDURL != "":
		text, meta, err = ingestion.FromURL(ctx, analyzeJDURL, useBrowser(cmd), app.cfg.Verbose)
		if err != nil {
			return "", nil, fmt.Errorf("failed to fetch job description: %w", err)
		}
	case analyzeJDFile == "-":
		text, meta, err = ingestion.FromReader(cmd.InOrStdin())
	case analyzeJDFile != "":
		text, meta, err = ingestion.FromFile(analyzeJDFile)
	case analyzeJD != "":
		text, meta, err = ingestion.FromText(analyzeJD)
	default:
		return "", nil, nil
	}

	if errors.Is(err, ingestion.ErrEmptyDescription) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to read job description: %w", err)
	}
	if app.cfg.Verbose {
		log.Printf("[VERBOSE] Job description from %s: %d characters", meta.Source, meta.Chars)
	}
	return text, meta, nil
}
