// Package dashboard gathers everything the dashboard shows in one concurrent fetch.
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-analyzer/internal/jobfeed"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Client is the subset of the API client the dashboard reads from.
type Client interface {
	Profile(ctx context.Context) (*types.UserProfile, error)
	MyResumes(ctx context.Context) ([]types.Resume, error)
	Jobs(ctx context.Context) ([]types.Job, error)
}

// Options configures Load.
type Options struct {
	// TopJobs caps the number of best-matching jobs kept; zero keeps all.
	TopJobs int
	Now     time.Time
	Verbose bool
}

// Dashboard is the signed-in user's overview.
type Dashboard struct {
	Profile *types.UserProfile
	Resumes []types.Resume
	Feed    *jobfeed.Feed
	TopJobs []types.Job
}

// Load fetches the profile, resumes and job feed in parallel. A failing job feed falls
// back to sample jobs; any other failure, and any authentication failure, is returned.
func Load(ctx context.Context, client Client, opts Options) (*Dashboard, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	g, gCtx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	d := &Dashboard{}

	g.Go(func() error {
		profile, err := client.Profile(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		mu.Lock()
		d.Profile = profile
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		resumes, err := client.MyResumes(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load resumes: %w", err)
		}
		mu.Lock()
		d.Resumes = resumes
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		feed, err := jobfeed.Load(gCtx, client, opts.Now, opts.Verbose)
		if err != nil {
			return fmt.Errorf("failed to load jobs: %w", err)
		}
		mu.Lock()
		d.Feed = feed
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	d.TopJobs = jobfeed.Apply(d.Feed.Jobs, jobfeed.Query{Sort: jobfeed.SortMatch})
	if opts.TopJobs > 0 && len(d.TopJobs) > opts.TopJobs {
		d.TopJobs = d.TopJobs[:opts.TopJobs]
	}
	return d, nil
}
