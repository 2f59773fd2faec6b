// Package api is the HTTP client for the resume-analyzer backend.
// Every request carries the stored bearer token; a 401 or 403 clears it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-analyzer/internal/session"
)

// DefaultTimeout is the default per-request timeout.
const DefaultTimeout = 60 * time.Second

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 16 << 20

// RequestIDHeader carries a per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// Endpoint paths. Auth paths are rooted at the base URL; the rest sit under the API prefix.
const (
	PathLogin          = "/auth/login"
	PathRegister       = "/auth/register"
	PathResumeUpload   = "/resume/upload"
	PathMyResumes      = "/resume/my-resumes"
	PathResume         = "/resume/%d"
	PathAnalyze        = "/analyze/%d"
	PathAnalyzeHistory = "/analyze/history/%d"
	PathProfile        = "/user/profile"
	PathJobs           = "/jobs"
)

// Client talks to the backend on behalf of the signed-in user.
type Client struct {
	baseURL    string
	prefix     string
	httpClient *http.Client
	store      session.TokenStore
	verbose    bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithAPIPrefix sets the prefix for resource endpoints, e.g. "/api".
func WithAPIPrefix(prefix string) Option {
	return func(c *Client) {
		c.prefix = strings.TrimRight(prefix, "/")
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithVerbose logs every request and its outcome.
func WithVerbose(v bool) Option {
	return func(c *Client) {
		c.verbose = v
	}
}

// New creates a client for baseURL that reads and clears tokens through store.
func New(baseURL string, store session.TokenStore, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", baseURL)
	}
	if store == nil {
		return nil, errors.New("token store is required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		store:      store,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Store returns the token store backing the client.
func (c *Client) Store() session.TokenStore {
	return c.store
}

func (c *Client) resourcePath(format string, args ...any) string {
	if len(args) > 0 {
		format = fmt.Sprintf(format, args...)
	}
	return c.prefix + format
}

// request describes a single API call.
type request struct {
	method      string
	path        string
	body        io.Reader
	contentType string
}

func jsonRequest(method, path string, payload any) (request, error) {
	req := request{method: method, path: path}
	if payload == nil {
		return req, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return req, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req.body = bytes.NewReader(data)
	req.contentType = "application/json"
	return req, nil
}

// do executes r and decodes a successful JSON body into out (when out is non-nil and the
// body is non-empty).
func (c *Client) do(ctx context.Context, r request, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return &Error{Method: r.method, Path: r.path, Kind: KindUnknown, Message: "failed to create request", Cause: err}
	}

	httpReq.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		httpReq.Header.Set("Content-Type", r.contentType)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set(RequestIDHeader, requestID)

	token, err := c.store.Load()
	if err != nil {
		// An unreadable token is treated as no token; the backend decides.
		if c.verbose {
			log.Printf("[API] ignoring stored token: %v", err)
		}
		token = ""
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if c.verbose {
			log.Printf("[API] %s %s failed after %s: %v", r.method, r.path, time.Since(start).Round(time.Millisecond), err)
		}
		return &Error{Method: r.method, Path: r.path, Kind: KindNetwork, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &Error{Method: r.method, Path: r.path, Status: resp.StatusCode, Kind: KindNetwork, Message: "failed to read response body", Cause: err}
	}

	if c.verbose {
		log.Printf("[API] %s %s -> %d in %s (request %s)", r.method, r.path, resp.StatusCode, time.Since(start).Round(time.Millisecond), requestID)
	}

	if resp.StatusCode >= 400 {
		apiErr := &Error{
			Method:  r.method,
			Path:    r.path,
			Status:  resp.StatusCode,
			Kind:    KindForStatus(resp.StatusCode),
			Message: errorMessage(body),
		}
		if apiErr.Kind == KindUnauthorized {
			if clearErr := c.store.Clear(); clearErr != nil {
				log.Printf("[API] failed to clear expired token: %v", clearErr)
			}
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Method: r.method, Path: r.path, Status: resp.StatusCode, Kind: KindUnknown, Message: "unexpected response body", Cause: err}
	}
	return nil
}
