package jobfeed

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jonathan/resume-analyzer/internal/api"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func feed() []types.Job {
	return EnrichAll([]types.Job{
		{ID: "1", Position: "Go Backend Engineer", Company: "Acme", Location: "Berlin", Tags: []string{"Go", "Postgres"}, MatchScore: 70, Date: "2026-03-01"},
		{ID: "2", Position: "Frontend Developer", Company: "Pixel", Location: "Remote", Tags: []string{"React"}, MatchScore: 90, Date: "2026-01-15"},
		{ID: "3", Position: "Data Engineer", Company: "Numbers", Location: "Pune", Tags: []string{"Python", "Spark"}, MatchScore: 70, Date: "2026-04-10"},
		{ID: "4", Position: "Platform Engineer", Company: "Acme", Location: "Munich", Tags: []string{"Kubernetes", "Go"}, MatchScore: 40, JobType: "Contract", Remote: boolPtr(false)},
	})
}

func ids(jobs []types.Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}

func TestEnrich_RotatesDefaults(t *testing.T) {
	j := Enrich(types.Job{ID: "x"}, 0)
	assert.Equal(t, SalaryRanges[0], j.Salary)
	assert.Equal(t, "Full-time", j.JobType)
	assert.True(t, j.IsRemote())
	assert.Equal(t, Experience[0], j.Experience)

	j = Enrich(types.Job{ID: "y"}, 4)
	assert.Equal(t, SalaryRanges[4], j.Salary)
	assert.Equal(t, "Part-time", j.JobType)
	assert.False(t, j.IsRemote())
	assert.Equal(t, "8+ years", j.Experience)
}

func TestEnrich_KeepsExistingFields(t *testing.T) {
	j := Enrich(types.Job{Salary: "$200k", JobType: "Contract", Remote: boolPtr(false), Experience: "1 year"}, 0)
	assert.Equal(t, "$200k", j.Salary)
	assert.Equal(t, "Contract", j.JobType)
	assert.False(t, j.IsRemote())
	assert.Equal(t, "1 year", j.Experience)
}

func TestApply_SortByMatchIsStable(t *testing.T) {
	got := Apply(feed(), Query{Sort: SortMatch})
	assert.Equal(t, []string{"2", "1", "3", "4"}, ids(got))
}

func TestApply_SortByDate(t *testing.T) {
	got := Apply(feed(), Query{Sort: SortDate})
	assert.Equal(t, []string{"3", "1", "2", "4"}, ids(got), "undated jobs sort last")
}

func TestApply_Search(t *testing.T) {
	tests := []struct {
		search string
		want   []string
	}{
		{"", []string{"2", "1", "3", "4"}},
		{"acme", []string{"1", "4"}},
		{"GO", []string{"1", "4"}},
		{"remote", []string{"2"}},
		{"spark", []string{"3"}},
		{"k8s", []string{"4"}},
		{"golang", []string{"1", "4"}},
		{"postgresql", []string{"1"}},
		{"cobol", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			got := Apply(feed(), Query{Search: tt.search, Sort: SortMatch})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApply_Filter(t *testing.T) {
	jobs := feed()
	// idx 0 and 3 are remote by rotation, but job 4 carries an explicit false.
	assert.Equal(t, []string{"1"}, ids(Apply(jobs, Query{Filter: FilterRemote})))
	assert.Equal(t, []string{"4"}, ids(Apply(jobs, Query{Filter: FilterContract})))
	assert.Equal(t, []string{"2", "1", "3"}, ids(Apply(jobs, Query{Filter: FilterFullTime})))
	assert.Len(t, Apply(jobs, Query{Filter: FilterAll}), 4)
}

func TestApply_IsPure(t *testing.T) {
	jobs := feed()
	before := ids(jobs)
	q := Query{Search: "engineer", Filter: FilterFullTime, Sort: SortDate}

	first := Apply(jobs, q)
	second := Apply(jobs, q)

	assert.Equal(t, before, ids(jobs), "input must not be reordered")
	assert.Equal(t, first, second)
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("remote")
	require.NoError(t, err)
	assert.Equal(t, FilterRemote, f)

	f, err = ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	_, err = ParseFilter("internship")
	assert.Error(t, err)
}

func TestParseSort(t *testing.T) {
	s, err := ParseSort("")
	require.NoError(t, err)
	assert.Equal(t, SortMatch, s)

	s, err = ParseSort("Newest")
	require.NoError(t, err)
	assert.Equal(t, SortDate, s)

	_, err = ParseSort("salary")
	assert.Error(t, err)
}

func TestMatchTier(t *testing.T) {
	assert.Equal(t, TierHigh, MatchTier(80))
	assert.Equal(t, TierMedium, MatchTier(79))
	assert.Equal(t, TierMedium, MatchTier(55))
	assert.Equal(t, TierLow, MatchTier(54))
}

func TestTopPick(t *testing.T) {
	assert.True(t, TopPick(0, SortMatch, types.Job{MatchScore: 70}))
	assert.False(t, TopPick(0, SortMatch, types.Job{MatchScore: 69}))
	assert.False(t, TopPick(1, SortMatch, types.Job{MatchScore: 95}))
	assert.False(t, TopPick(0, SortDate, types.Job{MatchScore: 95}))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "0 roles match your profile", Summary(nil))
	assert.Equal(t, "1 role match your profile · Top match 92%", Summary([]types.Job{{MatchScore: 92}}))
	assert.Equal(t, "2 roles match your profile", Summary([]types.Job{{}, {}}))
}

func TestSampleJobs(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	jobs := SampleJobs(now)
	require.Len(t, jobs, 5)
	assert.Equal(t, "TechCorp", jobs[0].Company)
	assert.Equal(t, 92, jobs[0].MatchScore)
	assert.True(t, now.Equal(jobs[4].PostedAt()))
}

type stubSource struct {
	jobs []types.Job
	err  error
}

func (s stubSource) Jobs(context.Context) ([]types.Job, error) { return s.jobs, s.err }

func TestLoad(t *testing.T) {
	now := time.Now()

	f, err := Load(context.Background(), stubSource{jobs: []types.Job{{ID: "a"}}}, now, false)
	require.NoError(t, err)
	assert.False(t, f.Sample)
	assert.NotEmpty(t, f.Jobs[0].Salary)

	f, err = Load(context.Background(), stubSource{err: &api.Error{Status: http.StatusBadGateway, Kind: api.KindServer}}, now, false)
	require.NoError(t, err)
	assert.True(t, f.Sample)
	assert.Len(t, f.Jobs, 5)
	assert.Error(t, f.Cause)

	f, err = Load(context.Background(), stubSource{err: errors.New("dial tcp: refused")}, now, false)
	require.NoError(t, err)
	assert.True(t, f.Sample)

	_, err = Load(context.Background(), stubSource{err: &api.Error{Status: http.StatusUnauthorized, Kind: api.KindUnauthorized}}, now, false)
	assert.True(t, api.IsAuthError(err))
}
