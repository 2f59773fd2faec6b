package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingHTML = `<html>
<head><title>Senior Go Engineer - Acme</title></head>
<body>
	<nav>Jobs | About</nav>
	<div class="job-description">
		<h2>About the role</h2>
		<p>You will build   payment APIs.</p>
		<ul><li>5+ years of Go</li><li>PostgreSQL</li></ul>
	</div>
	<form id="application-form">Upload resume</form>
	<footer>© Acme</footer>
</body>
</html>`

func serve(t *testing.T, contentType, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFromURL_Success(t *testing.T) {
	srv := serve(t, "text/html; charset=utf-8", postingHTML, http.StatusOK)

	text, meta, err := FromURL(context.Background(), srv.URL, false, false)
	require.NoError(t, err)

	assert.Equal(t, "About the role\nYou will build payment APIs.\n5+ years of Go\nPostgreSQL", text)
	assert.Equal(t, SourceURL, meta.Source)
	assert.Equal(t, srv.URL, meta.URL)
	assert.Equal(t, "unknown", meta.Platform)
	assert.Equal(t, "Senior Go Engineer - Acme", meta.Title)
	assert.False(t, meta.Rendered)
}

func TestFromURL_PlainText(t *testing.T) {
	srv := serve(t, "text/plain", "Go engineer\n\n\n\nRemote", http.StatusOK)

	text, meta, err := FromURL(context.Background(), srv.URL, false, false)
	require.NoError(t, err)
	assert.Equal(t, "Go engineer\n\nRemote", text)
	assert.Empty(t, meta.Title)
}

func TestFromURL_InvalidURL(t *testing.T) {
	_, _, err := FromURL(context.Background(), "not-a-url", false, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestFromURL_HTTPError(t *testing.T) {
	srv := serve(t, "text/html", "gone", http.StatusGone)

	_, _, err := FromURL(context.Background(), srv.URL, false, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
	assert.Contains(t, err.Error(), "410")
}

func TestFromURL_NoText(t *testing.T) {
	srv := serve(t, "text/html", `<html><body><script>render()</script></body></html>`, http.StatusOK)

	_, _, err := FromURL(context.Background(), srv.URL, false, false)
	assert.ErrorIs(t, err, ErrContentExtractionFailed)
}

func TestFromURL_BrowserFallback(t *testing.T) {
	srv := serve(t, "text/html", `<html><body><div id="root">Loading...</div></body></html>`, http.StatusOK)
	rendered := `<html><head><title>Rendered</title></head><body><main>` +
		strings.Repeat("<p>Own the ingestion pipeline.</p>", 30) + `</main></body></html>`

	var calls int
	text, meta, err := FromURLWithOptions(context.Background(), srv.URL, URLOptions{
		UseBrowser: true,
		Render: func(_ context.Context, _ string) (string, error) {
			calls++
			return rendered, nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, meta.Rendered)
	assert.Equal(t, "Rendered", meta.Title)
	assert.Contains(t, text, "Own the ingestion pipeline.")
}

func TestFromURL_BrowserFailureKeepsHTTPContent(t *testing.T) {
	srv := serve(t, "text/html", `<html><body><main>Short posting</main></body></html>`, http.StatusOK)

	text, meta, err := FromURLWithOptions(context.Background(), srv.URL, URLOptions{
		UseBrowser: true,
		Render: func(context.Context, string) (string, error) {
			return "", errors.New("chrome not installed")
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Short posting", text)
	assert.False(t, meta.Rendered)
}
