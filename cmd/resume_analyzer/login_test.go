package main

import (
	"os"
	"testing"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/guard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginCommand_Success(t *testing.T) {
	env := newTestEnv(t)
	env.srv.AddUser("Sam Lee", "sam@example.com", "secret123")

	out, err := env.run(t, "login", "--email", "sam@example.com", "--password", "secret123")
	require.NoError(t, err)

	assert.Contains(t, out, "Logged in as sam@example.com")
	assert.NotEmpty(t, env.storedToken(t))
}

func TestLoginCommand_PasswordFromStdin(t *testing.T) {
	env := newTestEnv(t)
	env.srv.AddUser("Sam Lee", "sam@example.com", "secret123")

	out, err := env.runWithInput(t, "secret123\n", "login", "--email", "sam@example.com")
	require.NoError(t, err)

	assert.Contains(t, out, "Password: ")
	assert.NotEmpty(t, env.storedToken(t))
}

func TestLoginCommand_BadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.srv.AddUser("Sam Lee", "sam@example.com", "secret123")

	_, err := env.run(t, "login", "--email", "sam@example.com", "--password", "wrong-password")
	require.Error(t, err)

	assert.Equal(t, "Bad credentials", describeError(err))
	assert.Empty(t, env.storedToken(t))
}

func TestLoginCommand_InvalidEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "login", "--email", "not-an-email", "--password", "x")
	require.Error(t, err)

	assert.Contains(t, describeError(err), "email:")
	assert.Empty(t, env.srv.Requests())
}

func TestLoginCommand_MissingEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "login", "--password", "secret123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestLoginCommand_AlreadyLoggedIn(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "sam@example.com")

	_, err := env.run(t, "login", "--email", "sam@example.com", "--password", "secret123")
	require.Error(t, err)

	var redirect *guard.RedirectError
	require.ErrorAs(t, err, &redirect)
	assert.Equal(t, guard.AnalyzeRoute, redirect.RedirectTo)
	assert.Contains(t, describeError(err), "already logged in")
}

func TestRegisterCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "register", "--name", "Sam Lee", "--email", "sam@example.com", "--password", "secret123")
	require.NoError(t, err)

	assert.Contains(t, out, "Account created. Logged in as sam@example.com")
	assert.NotEmpty(t, env.storedToken(t))
}

func TestRegisterCommand_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.srv.AddUser("Sam Lee", "sam@example.com", "secret123")

	_, err := env.run(t, "register", "--name", "Sam", "--email", "sam@example.com", "--password", "secret123")
	require.Error(t, err)

	assert.Equal(t, "Email already exists", describeError(err))
	assert.Empty(t, env.storedToken(t))
}

func TestRegisterCommand_ShortPassword(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "register", "--name", "Sam", "--email", "sam@example.com", "--password", "short")
	require.Error(t, err)

	assert.Contains(t, describeError(err), "password:")
	assert.Empty(t, env.srv.Requests())
}

func TestLogoutCommand(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "sam@example.com")

	out, err := env.run(t, "logout")
	require.NoError(t, err)

	assert.Contains(t, out, "Logged out")
	assert.Empty(t, env.storedToken(t))
}

func TestStatusCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "not logged in")
	assert.Contains(t, out, env.srv.URL)

	env.login(t, "sam@example.com")
	out, err = env.run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Session:  logged in")
	assert.Contains(t, out, "sam@example.com")
}

func TestStatusCommand_OneShotToken(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "--token", "opaque-token", "status")
	require.NoError(t, err)

	assert.Contains(t, out, "Session:  logged in")
	assert.Contains(t, out, "Token details unavailable")
	assert.NotContains(t, out, env.tokenFile)
	assert.Empty(t, env.storedToken(t))
}

func TestStatusCommand_SealedToken(t *testing.T) {
	env := newTestEnv(t)
	env.srv.AddUser("Sam Lee", "sam@example.com", "secret123")
	t.Setenv(config.EnvTokenKey, "correct horse battery staple")

	_, err := env.run(t, "login", "--email", "sam@example.com", "--password", "secret123")
	require.NoError(t, err)

	raw, err := os.ReadFile(env.tokenFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"sealed"`)
	assert.NotContains(t, string(raw), `"token"`)

	out, err := env.run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Session:  logged in")

	t.Setenv(config.EnvTokenKey, "")
	out, err = env.run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "not logged in")
	assert.Contains(t, out, "Stored token ignored")
}
