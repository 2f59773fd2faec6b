package jobfeed

import (
	"fmt"
	"time"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Tier buckets a job's match score.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// MatchTier is high from 80, medium from 55, otherwise low.
func MatchTier(score int) Tier {
	switch {
	case score >= 80:
		return TierHigh
	case score >= 55:
		return TierMedium
	default:
		return TierLow
	}
}

// TopPickScore is the minimum score for the first result to be flagged as a top pick.
const TopPickScore = 70

// TopPick reports whether the job at idx of a sorted feed is the highlighted top pick.
func TopPick(idx int, s Sort, job types.Job) bool {
	return idx == 0 && s == SortMatch && job.MatchScore >= TopPickScore
}

// Summary renders the feed headline, e.g. "3 roles match your profile · Top match 92%".
func Summary(filtered []types.Job) string {
	noun := "roles"
	if len(filtered) == 1 {
		noun = "role"
	}
	s := fmt.Sprintf("%d %s match your profile", len(filtered), noun)
	if len(filtered) > 0 && filtered[0].MatchScore > 0 {
		s += fmt.Sprintf(" · Top match %d%%", filtered[0].MatchScore)
	}
	return s
}

// SampleJobs is the fallback list shown when the live feed is unavailable.
// Listings are dated at now.
func SampleJobs(now time.Time) []types.Job {
	date := now.UTC().Format(time.RFC3339)
	sample := []types.Job{
		{ID: "m1", Position: "Senior React Developer", Company: "TechCorp", Location: "Remote", Tags: []string{"React", "TypeScript", "Node.js", "GraphQL"}, URL: "#", MatchScore: 92},
		{ID: "m2", Position: "Full-Stack Engineer", Company: "Startup Inc", Location: "Bangalore, IN", Tags: []string{"Java", "Spring Boot", "React", "MySQL"}, URL: "#", MatchScore: 85},
		{ID: "m3", Position: "Backend Java Developer", Company: "Enterprise Ltd", Location: "Mumbai, IN", Tags: []string{"Java", "Spring", "MySQL", "REST", "Docker"}, URL: "#", MatchScore: 78},
		{ID: "m4", Position: "Cloud DevOps Engineer", Company: "CloudSystems", Location: "Remote", Tags: []string{"AWS", "Docker", "Kubernetes", "CI/CD", "Terraform"}, URL: "#", MatchScore: 65},
		{ID: "m5", Position: "Data Engineer", Company: "Analytics Co", Location: "Hyderabad, IN", Tags: []string{"Python", "Spark", "SQL", "Airflow", "Kafka"}, URL: "#", MatchScore: 55},
	}
	for i := range sample {
		sample[i].Date = date
	}
	return sample
}
