package main

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/guard"
	"github.com/jonathan/resume-analyzer/internal/resumefile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadCommand(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "sam@example.com")
	path := writeFile(t, "cv.pdf", "Experienced Go developer")

	out, err := env.run(t, "upload", path)
	require.NoError(t, err)

	assert.Contains(t, out, "RESUME FILE")
	assert.Contains(t, out, "cv.pdf")
	assert.Contains(t, out, "Uploaded cv.pdf (#")
	require.Len(t, env.srv.Resumes("sam@example.com"), 1)
}

func TestUploadCommand_DryRun(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "sam@example.com")
	path := writeFile(t, "cv.pdf", "Experienced Go developer")

	out, err := env.run(t, "upload", "--dry-run", path)
	require.NoError(t, err)

	assert.Contains(t, out, "RESUME FILE")
	assert.NotContains(t, out, "Uploaded")
	assert.Empty(t, env.srv.Resumes("sam@example.com"))
}

func TestUploadCommand_RejectsBeforeSending(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "sam@example.com")

	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{name: "unsupported type", file: "cv.txt", content: "text", want: "unsupported resume type"},
		{name: "empty file", file: "cv.pdf", content: "", want: "resume file is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)

			_, err := env.run(t, "upload", path)
			require.Error(t, err)
			assert.Contains(t, describeError(err), tt.want)
		})
	}
	assert.Empty(t, env.srv.Resumes("sam@example.com"))
}

func TestUploadCommand_TooLarge(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "sam@example.com")
	t.Setenv(config.EnvMaxUploadMB, "1")
	path := writeFile(t, "cv.pdf", string(make([]byte, 2<<20)))

	_, err := env.run(t, "upload", path)
	require.Error(t, err)

	var tooLarge *resumefile.TooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, int64(1<<20), tooLarge.Limit)
	assert.Contains(t, describeError(err), "larger than the 1.00 MB upload limit")
	assert.Empty(t, env.srv.Resumes("sam@example.com"))
}

func TestUploadCommand_RequiresLogin(t *testing.T) {
	env := newTestEnv(t)
	path := writeFile(t, "cv.pdf", "Experienced Go developer")

	_, err := env.run(t, "upload", path)
	require.Error(t, err)

	var redirect *guard.RedirectError
	require.ErrorAs(t, err, &redirect)
	assert.Equal(t, guard.LoginRoute, redirect.RedirectTo)
	assert.Equal(t, "upload requires you to be logged in; run 'login' first", describeError(err))
	assert.Empty(t, env.srv.Requests())
}

func TestInspectCommand_WorksLoggedOut(t *testing.T) {
	env := newTestEnv(t)
	path := writeFile(t, "cv.pdf", "Experienced Go developer")

	out, err := env.run(t, "inspect", path)
	require.NoError(t, err)

	assert.Contains(t, out, "cv.pdf")
	assert.Contains(t, out, "24 B")
	assert.Contains(t, out, "⚠ content looks like")
	assert.Empty(t, env.srv.Requests())
}

func TestInspectCommand_Unsupported(t *testing.T) {
	env := newTestEnv(t)
	path := writeFile(t, "cv.png", "png")

	out, err := env.run(t, "inspect", path)
	require.Error(t, err)
	assert.Contains(t, out, "cv.png")
}

func TestResumesCommand(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "sam@example.com")
	env.srv.AddResume("sam@example.com", "first.pdf", "text")
	env.srv.AddResume("sam@example.com", "second.docx", "text")
	env.srv.AddResume("other@example.com", "theirs.pdf", "text")

	out, err := env.run(t, "resumes")
	require.NoError(t, err)

	assert.Contains(t, out, "MY RESUMES (2)")
	assert.Contains(t, out, "first.pdf")
	assert.Contains(t, out, "second.docx")
	assert.NotContains(t, out, "theirs.pdf")
}

func TestResumesCommand_SessionExpired(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "sam@example.com")
	env.srv.RevokeAll()

	_, err := env.run(t, "resumes")
	require.Error(t, err)

	assert.Equal(t, "Your session has expired. Please log in again.", describeError(err))
	assert.Empty(t, env.storedToken(t))
}

func TestDeleteCommand(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "sam@example.com")
	r := env.srv.AddResume("sam@example.com", "cv.pdf", "text")

	out, err := env.run(t, "delete", strconv.FormatInt(r.ID, 10))
	require.NoError(t, err)

	assert.Contains(t, out, fmt.Sprintf("Deleted resume #%d", r.ID))
	assert.Empty(t, env.srv.Resumes("sam@example.com"))
}

func TestDeleteCommand_Analysis(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "sam@example.com")

	out, err := env.run(t, "delete", "--analysis", "42")
	require.NoError(t, err)

	assert.Contains(t, out, "Deleted analysis #42")
	reqs := env.srv.Requests()
	require.NotEmpty(t, reqs)
	assert.Equal(t, "DELETE", reqs[len(reqs)-1].Method)
	assert.Equal(t, "/analyze/42", reqs[len(reqs)-1].Path)
}

func TestDeleteCommand_InvalidID(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "sam@example.com")

	_, err := env.run(t, "delete", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid id")
}
