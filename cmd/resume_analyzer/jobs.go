package main

import (
	"fmt"
	"log"
	"time"

	"github.com/jonathan/resume-analyzer/internal/guard"
	"github.com/jonathan/resume-analyzer/internal/jobfeed"
	"github.com/spf13/cobra"
)

var jobsCmd = withAccess(&cobra.Command{
	Use:   "jobs",
	Short: "Browse job opportunities matched to your profile",
	Long: `Browse the job feed. Filter by job type with --filter (All, Full-time, Contract,
Remote or Part-time), search title, company and tags with --search, and sort by best
match or newest with --sort. When the live feed is unavailable sample jobs are shown.`,
	Args: cobra.NoArgs,
	RunE: runJobs,
}, guard.Protected)

var (
	jobsSearch string
	jobsFilter string
	jobsSort   string
	jobsLimit  int
)

func init() {
	jobsCmd.Flags().StringVarP(&jobsSearch, "search", "s", "", "Search text")
	jobsCmd.Flags().StringVarP(&jobsFilter, "filter", "f", string(jobfeed.FilterAll), "Job type filter")
	jobsCmd.Flags().StringVar(&jobsSort, "sort", string(jobfeed.SortMatch), "Sort order: match or date")
	jobsCmd.Flags().IntVarP(&jobsLimit, "limit", "n", 0, "Show at most this many jobs (0 shows all)")
	rootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, _ []string) error {
	filter, err := jobfeed.ParseFilter(jobsFilter)
	if err != nil {
		return err
	}
	sort, err := jobfeed.ParseSort(jobsSort)
	if err != nil {
		return err
	}

	feed, err := jobfeed.Load(cmd.Context(), app.client, time.Now(), app.cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to load jobs: %w", err)
	}
	if feed.Sample && app.cfg.Verbose {
		log.Printf("[VERBOSE] Live job feed unavailable: %v", feed.Cause)
	}

	app.printer.PrintJobs(feed, jobfeed.Query{Search: jobsSearch, Filter: filter, Sort: sort}, jobsLimit)
	return nil
}
