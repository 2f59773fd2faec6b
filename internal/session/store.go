// Package session persists the bearer token and derives the signed-in state from it.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	// ErrTokenUnreadable is returned when the token file exists but cannot be decoded,
	// e.g. it was sealed with a different passphrase.
	ErrTokenUnreadable = errors.New("stored token cannot be read")
	// ErrEmptyToken is returned when saving an empty token.
	ErrEmptyToken = errors.New("token is empty")
)

// TokenStore is the client-side home of the auth token.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// tokenFile is the on-disk layout. Exactly one of Token or Sealed is set.
type tokenFile struct {
	Token   string    `json:"token,omitempty"`
	Sealed  string    `json:"sealed,omitempty"`
	Salt    string    `json:"salt,omitempty"`
	SavedAt time.Time `json:"saved_at"`
}

// FileStore keeps the token in a JSON file readable only by the current user.
// When a passphrase is set the token is sealed before it is written.
type FileStore struct {
	path       string
	passphrase string
}

// NewFileStore creates a store backed by path. An empty passphrase stores the token in clear.
func NewFileStore(path, passphrase string) *FileStore {
	return &FileStore{path: path, passphrase: passphrase}
}

// Path returns the token file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load returns the stored token, or "" when no token has been saved.
func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read token file: %w", err)
	}

	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenUnreadable, err)
	}

	if tf.Sealed == "" {
		return tf.Token, nil
	}
	if s.passphrase == "" {
		return "", fmt.Errorf("%w: token is sealed and no passphrase is configured", ErrTokenUnreadable)
	}
	token, err := open(tf.Sealed, tf.Salt, s.passphrase)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenUnreadable, err)
	}
	return token, nil
}

// Save writes the token atomically with 0600 permissions.
func (s *FileStore) Save(token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	tf := tokenFile{SavedAt: time.Now().UTC()}
	if s.passphrase == "" {
		tf.Token = token
	} else {
		sealed, salt, err := seal(token, s.passphrase)
		if err != nil {
			return fmt.Errorf("failed to seal token: %w", err)
		}
		tf.Sealed = sealed
		tf.Salt = salt
	}

	data, err := json.MarshalIndent(tf, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".token-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp token file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set token file permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close token file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace token file: %w", err)
	}
	return nil
}

// Clear removes the token file. Clearing an absent token is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// MemoryStore keeps the token in memory. Used for one-shot --token sessions and tests.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore creates a store preloaded with token (which may be empty).
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (m *MemoryStore) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryStore) Save(token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
