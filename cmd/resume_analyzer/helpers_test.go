package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/resume-analyzer/internal/api/apitest"
	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/session"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// testEnv is a fake backend plus an isolated token file.
type testEnv struct {
	srv       *apitest.Server
	tokenFile string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	for _, key := range []string{
		config.EnvAPIURL, config.EnvAPIPrefix, config.EnvTokenFile, config.EnvTokenKey,
		config.EnvTimeoutSeconds, config.EnvMaxUploadMB, config.EnvUseBrowser, config.EnvVerbose,
	} {
		t.Setenv(key, "")
	}

	srv := apitest.NewServer("")
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, tokenFile: filepath.Join(t.TempDir(), "token.json")}
}

// run executes the CLI against the fake backend and returns everything written to stdout and stderr.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return e.runWithInput(t, "", args...)
}

func (e *testEnv) runWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	full := append([]string{"--api-url", e.srv.URL, "--token-file", e.tokenFile}, args...)
	return execute(t, strings.NewReader(input), full...)
}

// login stores a valid token for email as if the user had logged in.
func (e *testEnv) login(t *testing.T, email string) {
	t.Helper()
	require.NoError(t, session.NewFileStore(e.tokenFile, "").Save(e.srv.IssueToken(email)))
}

func (e *testEnv) storedToken(t *testing.T) string {
	t.Helper()
	token, err := session.NewFileStore(e.tokenFile, "").Load()
	require.NoError(t, err)
	return token
}

func execute(t *testing.T, in io.Reader, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	app = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(in)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default between in-process runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
