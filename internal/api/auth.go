package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// ErrNoToken is returned when a login succeeds without a token in the response.
var ErrNoToken = errors.New("login response did not include a token")

// Login authenticates and stores the returned token.
func (c *Client) Login(ctx context.Context, req types.LoginRequest) (*types.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r, err := jsonRequest(http.MethodPost, PathLogin, req)
	if err != nil {
		return nil, err
	}

	var resp types.LoginResponse
	if err := c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, ErrNoToken
	}
	if err := c.store.Save(resp.Token); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	return &resp, nil
}

// Register creates an account. It does not sign in; see RegisterAndLogin.
func (c *Client) Register(ctx context.Context, req types.RegisterRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	r, err := jsonRequest(http.MethodPost, PathRegister, req)
	if err != nil {
		return err
	}
	return c.do(ctx, r, nil)
}

// RegisterAndLogin creates an account and immediately signs in with the same credentials.
func (c *Client) RegisterAndLogin(ctx context.Context, req types.RegisterRequest) (*types.LoginResponse, error) {
	if err := c.Register(ctx, req); err != nil {
		return nil, err
	}
	return c.Login(ctx, types.LoginRequest{Email: req.Email, Password: req.Password})
}

// Logout forgets the stored token. The backend keeps no session to end.
func (c *Client) Logout() error {
	return c.store.Clear()
}
