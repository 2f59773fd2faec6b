package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// ErrMissingInput is returned when the resume or the job description is absent.
var ErrMissingInput = errors.New("Please upload a resume and enter a job description.")

// Client is the subset of the API client the flow needs.
type Client interface {
	UploadResumeFile(ctx context.Context, path string) (*types.Resume, error)
	Analyze(ctx context.Context, resumeID int64, jobDescription string) (*types.Analysis, error)
}

// Input selects the resume either by a local file to upload or by an already stored ID.
type Input struct {
	ResumePath     string
	ResumeID       int64
	JobDescription string
	Verbose        bool
}

// Outcome is the analysis together with its decoded result.
type Outcome struct {
	Resume   *types.Resume
	Analysis *types.Analysis
	Result   Result
	Badge    Badge
	Uploaded bool
}

// RunAnalysis uploads the resume when a path is given, then analyzes it against the job description.
func RunAnalysis(ctx context.Context, client Client, in Input) (*Outcome, error) {
	if strings.TrimSpace(in.JobDescription) == "" || (in.ResumePath == "" && in.ResumeID <= 0) {
		return nil, ErrMissingInput
	}

	out := &Outcome{}
	resumeID := in.ResumeID
	if in.ResumePath != "" {
		if in.Verbose {
			log.Printf("[VERBOSE] Uploading resume %s", in.ResumePath)
		}
		resume, err := client.UploadResumeFile(ctx, in.ResumePath)
		if err != nil {
			return nil, fmt.Errorf("failed to upload resume: %w", err)
		}
		out.Resume = resume
		out.Uploaded = true
		resumeID = resume.ID
	}

	if in.Verbose {
		log.Printf("[VERBOSE] Analyzing resume %d against %d characters of job description", resumeID, len(in.JobDescription))
	}
	a, err := client.Analyze(ctx, resumeID, in.JobDescription)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze resume: %w", err)
	}
	if out.Resume == nil {
		out.Resume = a.Resume
	}

	out.Analysis = a
	out.Result = ResultOf(a)
	out.Badge = BadgeFor(a.Score)
	if in.Verbose && !out.Result.Valid {
		log.Printf("[VERBOSE] Analysis result did not match schema: %s", strings.Join(out.Result.Problems, "; "))
	}
	return out, nil
}
