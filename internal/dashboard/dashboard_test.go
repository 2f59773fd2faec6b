package dashboard

import (
	"context"
	"net/http"
	"testing"

	"github.com/jonathan/resume-analyzer/internal/api"
	"github.com/jonathan/resume-analyzer/internal/api/apitest"
	"github.com/jonathan/resume-analyzer/internal/session"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*api.Client, *apitest.Server) {
	t.Helper()
	srv := apitest.NewServer("")
	t.Cleanup(srv.Close)
	srv.AddUser("Jane", "jane@example.com", "password123")

	client, err := api.New(srv.URL, session.NewMemoryStore(srv.IssueToken("jane@example.com")))
	require.NoError(t, err)
	return client, srv
}

func TestLoad(t *testing.T) {
	client, srv := newClient(t)
	srv.AddResume("jane@example.com", "jane.pdf", "Go")
	srv.SetJobs([]types.Job{
		{ID: "1", Position: "Go Dev", Company: "Acme", MatchScore: 60},
		{ID: "2", Position: "SRE", Company: "Ops", MatchScore: 88},
		{ID: "3", Position: "QA", Company: "Test", MatchScore: 20},
	})

	d, err := Load(context.Background(), client, Options{TopJobs: 2})
	require.NoError(t, err)

	assert.Equal(t, "Jane", d.Profile.Name)
	require.Len(t, d.Resumes, 1)
	assert.False(t, d.Feed.Sample)
	require.Len(t, d.TopJobs, 2)
	assert.Equal(t, "2", d.TopJobs[0].ID)
	assert.Equal(t, "1", d.TopJobs[1].ID)
}

func TestLoad_JobFeedFailureFallsBack(t *testing.T) {
	client, srv := newClient(t)
	srv.FailJobs(http.StatusServiceUnavailable)

	d, err := Load(context.Background(), client, Options{})
	require.NoError(t, err)
	assert.True(t, d.Feed.Sample)
	assert.Len(t, d.TopJobs, 5)
}

func TestLoad_AuthFailureIsFatal(t *testing.T) {
	client, srv := newClient(t)
	srv.RevokeAll()

	_, err := Load(context.Background(), client, Options{})
	require.Error(t, err)
	assert.True(t, api.IsAuthError(err))

	token, _ := client.Store().Load()
	assert.Empty(t, token)
}

func TestLoad_ProfileFailureIsFatal(t *testing.T) {
	client, srv := newClient(t)
	srv.ForceStatus(http.MethodGet, api.PathProfile, http.StatusInternalServerError)

	_, err := Load(context.Background(), client, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load profile")
	assert.Equal(t, api.KindServer, api.Classify(err))
}
