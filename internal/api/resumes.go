package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// UploadField is the multipart field holding the resume file.
const UploadField = "file"

// UploadResume sends a resume file as multipart/form-data.
func (c *Client) UploadResume(ctx context.Context, fileName string, content io.Reader) (*types.Resume, error) {
	if fileName == "" {
		return nil, fmt.Errorf("file name is required")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, UploadField, escapeQuotes(fileName)))
	header.Set("Content-Type", contentTypeFor(fileName))

	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to read resume content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	r := request{
		method:      http.MethodPost,
		path:        c.resourcePath(PathResumeUpload),
		body:        &buf,
		contentType: mw.FormDataContentType(),
	}

	var resume types.Resume
	if err := c.do(ctx, r, &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

// UploadResumeFile uploads the file at path.
func (c *Client) UploadResumeFile(ctx context.Context, path string) (*types.Resume, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open resume: %w", err)
	}
	defer func() { _ = f.Close() }()
	return c.UploadResume(ctx, filepath.Base(path), f)
}

// MyResumes lists the signed-in user's resumes.
func (c *Client) MyResumes(ctx context.Context) ([]types.Resume, error) {
	var resumes []types.Resume
	if err := c.do(ctx, request{method: http.MethodGet, path: c.resourcePath(PathMyResumes)}, &resumes); err != nil {
		return nil, err
	}
	return resumes, nil
}

// DeleteResume removes a resume.
func (c *Client) DeleteResume(ctx context.Context, id int64) error {
	return c.do(ctx, request{method: http.MethodDelete, path: c.resourcePath(PathResume, id)}, nil)
}

// Analyze scores a stored resume against a job description.
func (c *Client) Analyze(ctx context.Context, resumeID int64, jobDescription string) (*types.Analysis, error) {
	payload := types.AnalyzeRequest{JobDescription: jobDescription}
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	r, err := jsonRequest(http.MethodPost, c.resourcePath(PathAnalyze, resumeID), payload)
	if err != nil {
		return nil, err
	}

	var analysis types.Analysis
	if err := c.do(ctx, r, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// AnalysisHistory lists past analyses of a resume.
func (c *Client) AnalysisHistory(ctx context.Context, resumeID int64) ([]types.Analysis, error) {
	var analyses []types.Analysis
	if err := c.do(ctx, request{method: http.MethodGet, path: c.resourcePath(PathAnalyzeHistory, resumeID)}, &analyses); err != nil {
		return nil, err
	}
	return analyses, nil
}

// DeleteAnalysis removes a stored analysis.
func (c *Client) DeleteAnalysis(ctx context.Context, id int64) error {
	return c.do(ctx, request{method: http.MethodDelete, path: c.resourcePath(PathAnalyze, id)}, nil)
}

func contentTypeFor(fileName string) string {
	switch filepath.Ext(fileName) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".doc":
		return "application/msword"
	}
	if ct := mime.TypeByExtension(filepath.Ext(fileName)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func escapeQuotes(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '"' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
