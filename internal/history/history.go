// Package history lists stored resumes together with their past analyses.
package history

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-analyzer/internal/api"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultConcurrency bounds parallel history requests.
const DefaultConcurrency = 4

// Client is the subset of the API client history reads from.
type Client interface {
	MyResumes(ctx context.Context) ([]types.Resume, error)
	AnalysisHistory(ctx context.Context, resumeID int64) ([]types.Analysis, error)
}

// Options configures Load.
type Options struct {
	WithAnalyses bool
	Concurrency  int
}

// Entry is one resume and, when requested, its analyses newest first.
type Entry struct {
	Resume   types.Resume
	Analyses []types.Analysis
	// Err is set when this resume's history could not be fetched.
	Err error
}

// Load lists the user's resumes. With WithAnalyses it also fetches each resume's
// analysis history, at most Concurrency at a time. A failure for one resume is kept on
// its Entry; an authentication failure aborts the whole load.
func Load(ctx context.Context, client Client, opts Options) ([]Entry, error) {
	resumes, err := client.MyResumes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}

	entries := make([]Entry, len(resumes))
	for i, r := range resumes {
		entries[i].Resume = r
	}
	if !opts.WithAnalyses || len(entries) == 0 {
		return entries, nil
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range entries {
		g.Go(func() error {
			analyses, err := client.AnalysisHistory(gCtx, entries[i].Resume.ID)
			if err != nil {
				if api.IsAuthError(err) {
					return fmt.Errorf("failed to load history of resume %d: %w", entries[i].Resume.ID, err)
				}
				entries[i].Err = err
				return nil
			}
			sortNewestFirst(analyses)
			entries[i].Analyses = analyses
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

func sortNewestFirst(analyses []types.Analysis) {
	sort.SliceStable(analyses, func(a, b int) bool {
		ta, tb := analyses[a].CreatedTime(), analyses[b].CreatedTime()
		if ta.Equal(tb) {
			return analyses[a].ID > analyses[b].ID
		}
		return ta.After(tb)
	})
}

// Latest returns the newest analysis across all entries, or nil.
func Latest(entries []Entry) *types.Analysis {
	var latest *types.Analysis
	for i := range entries {
		if len(entries[i].Analyses) == 0 {
			continue
		}
		a := &entries[i].Analyses[0]
		if latest == nil || a.CreatedTime().After(latest.CreatedTime()) ||
			(a.CreatedTime().Equal(latest.CreatedTime()) && a.ID > latest.ID) {
			latest = a
		}
	}
	return latest
}
