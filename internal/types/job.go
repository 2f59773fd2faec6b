package types

import (
	"strconv"
	"time"
)

// Job is a listing from the personalised feed at GET /jobs.
// Salary, JobType, Remote and Experience are optional; the feed fills them when absent.
type Job struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug,omitempty"`
	Epoch       string   `json:"epoch,omitempty"`
	Date        string   `json:"date,omitempty"`
	Company     string   `json:"company"`
	CompanyLogo string   `json:"company_logo,omitempty"`
	Logo        string   `json:"logo,omitempty"`
	Position    string   `json:"position"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	URL         string   `json:"url,omitempty"`
	ApplyURL    string   `json:"apply_url,omitempty"`
	MatchScore  int      `json:"matchScore"`

	Salary     string `json:"salary,omitempty"`
	JobType    string `json:"jobType,omitempty"`
	Remote     *bool  `json:"remote,omitempty"`
	Experience string `json:"experience,omitempty"`
}

// PostedAt returns the posting time from Date, falling back to the Unix Epoch field.
func (j *Job) PostedAt() time.Time {
	if t := parseTimestamp(j.Date); !t.IsZero() {
		return t
	}
	if j.Date != "" {
		if t, err := time.Parse("2006-01-02", j.Date); err == nil {
			return t
		}
	}
	if secs, err := strconv.ParseInt(j.Epoch, 10, 64); err == nil && secs > 0 {
		return time.Unix(secs, 0).UTC()
	}
	return time.Time{}
}

// IsRemote reports whether the job is flagged remote.
func (j *Job) IsRemote() bool {
	return j.Remote != nil && *j.Remote
}

// ApplyLink returns the best link for applying.
func (j *Job) ApplyLink() string {
	if j.ApplyURL != "" {
		return j.ApplyURL
	}
	return j.URL
}
