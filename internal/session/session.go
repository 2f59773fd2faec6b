package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session derives the signed-in state from the presence of a stored token.
type Session struct {
	store TokenStore
}

// New creates a session over store.
func New(store TokenStore) *Session {
	return &Session{store: store}
}

// Store returns the underlying token store.
func (s *Session) Store() TokenStore {
	return s.store
}

// Token returns the stored token, or "" when signed out.
func (s *Session) Token() (string, error) {
	return s.store.Load()
}

// IsAuthenticated reports whether a token is present. An unreadable token counts as signed out.
func (s *Session) IsAuthenticated() bool {
	token, err := s.store.Load()
	return err == nil && token != ""
}

// Login stores token as the current session.
func (s *Session) Login(token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	return s.store.Save(token)
}

// Logout forgets the current token.
func (s *Session) Logout() error {
	return s.store.Clear()
}

// TokenInfo holds claims read from a JWT without verifying its signature.
// The backend remains the only authority on validity.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that has passed at now.
func (i *TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// Remaining returns the time left before expiry, or 0 when expired or unknown.
func (i *TokenInfo) Remaining(now time.Time) time.Duration {
	if i.ExpiresAt.IsZero() || i.Expired(now) {
		return 0
	}
	return i.ExpiresAt.Sub(now)
}

// InspectToken decodes the registered claims of a JWT without checking the signature.
func InspectToken(token string) (*TokenInfo, error) {
	if token == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}

	info := &TokenInfo{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
