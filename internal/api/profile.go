package api

import (
	"context"
	"net/http"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Profile fetches the signed-in user's profile.
func (c *Client) Profile(ctx context.Context) (*types.UserProfile, error) {
	var profile types.UserProfile
	if err := c.do(ctx, request{method: http.MethodGet, path: c.resourcePath(PathProfile)}, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile replaces the editable profile fields and returns the stored profile.
func (c *Client) UpdateProfile(ctx context.Context, update types.ProfileUpdate) (*types.UserProfile, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	r, err := jsonRequest(http.MethodPut, c.resourcePath(PathProfile), update)
	if err != nil {
		return nil, err
	}
	var profile types.UserProfile
	if err := c.do(ctx, r, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
