package api

import (
	"context"
	"net/http"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Jobs fetches the personalised job feed.
func (c *Client) Jobs(ctx context.Context) ([]types.Job, error) {
	var jobs []types.Job
	if err := c.do(ctx, request{method: http.MethodGet, path: c.resourcePath(PathJobs)}, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}
