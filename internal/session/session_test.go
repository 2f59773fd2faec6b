package session

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	store := NewFileStore(path, "")

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token, "missing file means signed out")

	require.NoError(t, store.Save("abc.def.ghi"))

	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}

	require.NoError(t, store.Clear())
	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}

func TestFileStore_SaveEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "token.json"), "")
	assert.ErrorIs(t, store.Save(""), ErrEmptyToken)
}

func TestFileStore_Sealed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := NewFileStore(path, "correct horse")
	require.NoError(t, store.Save("sealed-token"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "sealed-token", "token must not be written in clear")

	token, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "sealed-token", token)

	_, err = NewFileStore(path, "wrong").Load()
	assert.ErrorIs(t, err, ErrTokenUnreadable)

	_, err = NewFileStore(path, "").Load()
	assert.ErrorIs(t, err, ErrTokenUnreadable)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := NewFileStore(path, "").Load()
	assert.ErrorIs(t, err, ErrTokenUnreadable)

	s := New(NewFileStore(path, ""))
	assert.False(t, s.IsAuthenticated())
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore("")
	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("t1"))
	token, _ = store.Load()
	assert.Equal(t, "t1", token)

	require.NoError(t, store.Clear())
	token, _ = store.Load()
	assert.Empty(t, token)

	assert.ErrorIs(t, store.Save(""), ErrEmptyToken)
}

func TestSession_AuthenticatedFollowsToken(t *testing.T) {
	s := New(NewMemoryStore(""))
	assert.False(t, s.IsAuthenticated())

	require.NoError(t, s.Login("token"))
	assert.True(t, s.IsAuthenticated())

	token, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "token", token)

	require.NoError(t, s.Logout())
	assert.False(t, s.IsAuthenticated())

	assert.ErrorIs(t, s.Login(""), ErrEmptyToken)
}

func signedToken(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestInspectToken(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	expires := issued.Add(10 * time.Hour)
	token := signedToken(t, jwt.RegisteredClaims{
		Subject:   "jane@example.com",
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(expires),
	})

	info, err := InspectToken(token)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", info.Subject)
	assert.True(t, info.IssuedAt.Equal(issued))
	assert.True(t, info.ExpiresAt.Equal(expires))

	assert.False(t, info.Expired(issued.Add(time.Hour)))
	assert.Equal(t, 9*time.Hour, info.Remaining(issued.Add(time.Hour)))
	assert.True(t, info.Expired(expires))
	assert.Equal(t, time.Duration(0), info.Remaining(expires.Add(time.Minute)))
}

func TestInspectToken_NoExpiry(t *testing.T) {
	info, err := InspectToken(signedToken(t, jwt.RegisteredClaims{Subject: "x"}))
	require.NoError(t, err)
	assert.True(t, info.ExpiresAt.IsZero())
	assert.False(t, info.Expired(time.Now()))
	assert.Equal(t, time.Duration(0), info.Remaining(time.Now()))
}

func TestInspectToken_Malformed(t *testing.T) {
	_, err := InspectToken("")
	assert.Error(t, err)

	_, err = InspectToken("not-a-jwt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed token")
}
