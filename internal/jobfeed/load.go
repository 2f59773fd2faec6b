package jobfeed

import (
	"context"
	"log"
	"time"

	"github.com/jonathan/resume-analyzer/internal/api"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Source fetches the live feed.
type Source interface {
	Jobs(ctx context.Context) ([]types.Job, error)
}

// Feed is the enriched job list and where it came from.
type Feed struct {
	Jobs []types.Job
	// Sample is true when the live feed failed and SampleJobs were substituted.
	Sample bool
	// Cause is the live feed error that triggered the fallback.
	Cause error
}

// Load fetches and enriches the feed. Authentication failures are returned so the caller
// can prompt for sign-in; any other failure falls back to the sample jobs.
func Load(ctx context.Context, src Source, now time.Time, verbose bool) (*Feed, error) {
	jobs, err := src.Jobs(ctx)
	if err != nil {
		if api.IsAuthError(err) {
			return nil, err
		}
		if verbose {
			log.Printf("[VERBOSE] Live job feed unavailable, showing sample data: %v", err)
		}
		return &Feed{Jobs: EnrichAll(SampleJobs(now)), Sample: true, Cause: err}, nil
	}
	return &Feed{Jobs: EnrichAll(jobs)}, nil
}
