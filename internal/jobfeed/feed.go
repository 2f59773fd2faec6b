// Package jobfeed filters, sorts and annotates the personalised job feed.
package jobfeed

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/skills"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Rotating defaults for listings that omit salary, type or experience.
var (
	SalaryRanges = []string{"₹8–12 LPA", "₹12–18 LPA", "₹18–25 LPA", "₹25–40 LPA", "$80k–$110k", "$110k–$150k"}
	JobTypes     = []string{"Full-time", "Full-time", "Full-time", "Contract", "Part-time"}
	Experience   = []string{"0–2 years", "2–5 years", "3–6 years", "5–8 years", "8+ years"}
)

// Enrich fills the optional fields of job from the rotating defaults, keyed by its feed position.
// Fields already present are kept.
func Enrich(job types.Job, idx int) types.Job {
	if idx < 0 {
		idx = -idx
	}
	if job.Salary == "" {
		job.Salary = SalaryRanges[idx%len(SalaryRanges)]
	}
	if job.JobType == "" {
		job.JobType = JobTypes[idx%len(JobTypes)]
	}
	if job.Remote == nil {
		remote := idx%3 == 0
		job.Remote = &remote
	}
	if job.Experience == "" {
		job.Experience = Experience[idx%len(Experience)]
	}
	return job
}

// EnrichAll enriches every job by its index and returns a new slice.
func EnrichAll(jobs []types.Job) []types.Job {
	out := make([]types.Job, len(jobs))
	for i, j := range jobs {
		out[i] = Enrich(j, i)
	}
	return out
}

// Filter narrows the feed by job type.
type Filter string

const (
	FilterAll      Filter = "All"
	FilterFullTime Filter = "Full-time"
	FilterContract Filter = "Contract"
	FilterRemote   Filter = "Remote"
	FilterPartTime Filter = "Part-time"
)

// Filters lists the filters in display order.
var Filters = []Filter{FilterAll, FilterFullTime, FilterContract, FilterRemote, FilterPartTime}

// ParseFilter accepts a filter name case-insensitively; empty means All.
func ParseFilter(s string) (Filter, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return FilterAll, nil
	}
	for _, f := range Filters {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown filter %q (want one of %s)", s, joinFilters())
}

func joinFilters() string {
	names := make([]string, len(Filters))
	for i, f := range Filters {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Sort orders the feed.
type Sort string

const (
	// SortMatch orders by match score, best first.
	SortMatch Sort = "match"
	// SortDate orders by posting date, newest first.
	SortDate Sort = "date"
)

// ParseSort accepts "match" or "date"; empty means match.
func ParseSort(s string) (Sort, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "match", "best":
		return SortMatch, nil
	case "date", "newest":
		return SortDate, nil
	}
	return "", fmt.Errorf("unknown sort %q (want match or date)", s)
}

// Query is the feed's search text, filter and sort key.
type Query struct {
	Search string
	Filter Filter
	Sort   Sort
}

// Matches reports whether job passes the search text and filter of q.
func (q Query) Matches(job types.Job) bool {
	return matchesSearch(job, strings.ToLower(strings.TrimSpace(q.Search))) && matchesFilter(job, q.Filter)
}

func matchesSearch(job types.Job, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(job.Position), needle) ||
		strings.Contains(strings.ToLower(job.Company), needle) ||
		strings.Contains(strings.ToLower(job.Location), needle) {
		return true
	}
	for _, tag := range job.Tags {
		if strings.Contains(strings.ToLower(tag), needle) || skills.Equal(tag, needle) {
			return true
		}
	}
	return false
}

func matchesFilter(job types.Job, f Filter) bool {
	switch f {
	case "", FilterAll:
		return true
	case FilterRemote:
		return job.IsRemote()
	default:
		return job.JobType == string(f)
	}
}

// Apply returns the jobs matching q in q's order. The input slice is not modified and
// ties keep their feed order.
func Apply(jobs []types.Job, q Query) []types.Job {
	out := make([]types.Job, 0, len(jobs))
	for _, j := range jobs {
		if q.Matches(j) {
			out = append(out, j)
		}
	}

	switch q.Sort {
	case SortDate:
		sort.SliceStable(out, func(a, b int) bool {
			return out[a].PostedAt().After(out[b].PostedAt())
		})
	default:
		sort.SliceStable(out, func(a, b int) bool {
			return out[a].MatchScore > out[b].MatchScore
		})
	}
	return out
}
