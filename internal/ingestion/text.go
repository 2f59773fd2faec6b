// Package ingestion turns a job description from a file, stdin or a URL into clean text.
package ingestion

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// MaxDescriptionBytes caps what is read from a file or stdin.
const MaxDescriptionBytes = 1 << 20

// ErrEmptyDescription is returned when nothing is left after cleaning.
var ErrEmptyDescription = errors.New("job description is empty")

var (
	multiSpace = regexp.MustCompile(`\s+`)
	blankRuns  = regexp.MustCompile(`\n\n\n+`)
)

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = blankRuns.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving headings, bullets and indentation.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	// Typographic bullets from pasted postings become markdown bullets.
	for _, bullet := range []string{"• ", "· ", "▪ ", "– "} {
		if strings.HasPrefix(trimmed, bullet) {
			trimmed = "- " + strings.TrimSpace(strings.TrimPrefix(trimmed, bullet))
			break
		}
	}

	indent := len(line) - len(strings.TrimLeft(line, " \t"))
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		return strings.Repeat(" ", indent) + trimmed[:2] + multiSpace.ReplaceAllString(strings.TrimSpace(trimmed[2:]), " ")
	}
	return strings.Repeat(" ", indent) + multiSpace.ReplaceAllString(strings.TrimSpace(trimmed), " ")
}

// FromFile reads and cleans a job description file.
func FromFile(path string) (string, *Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer func() { _ = f.Close() }()

	text, meta, err := FromReader(f)
	if err != nil {
		return "", nil, err
	}
	meta.Source = SourceFile
	meta.Path = path
	return text, meta, nil
}

// FromReader reads and cleans a job description, typically from stdin.
func FromReader(r io.Reader) (string, *Metadata, error) {
	content, err := io.ReadAll(io.LimitReader(r, MaxDescriptionBytes+1))
	if err != nil {
		return "", nil, fmt.Errorf("failed to read job description: %w", err)
	}
	if len(content) > MaxDescriptionBytes {
		return "", nil, fmt.Errorf("job description is larger than %d bytes", MaxDescriptionBytes)
	}
	return fromText(string(content), SourceStdin)
}

// FromText cleans a job description given inline.
func FromText(content string) (string, *Metadata, error) {
	return fromText(content, SourceText)
}

func fromText(content string, source Source) (string, *Metadata, error) {
	cleaned := CleanText(content)
	if cleaned == "" {
		return "", nil, ErrEmptyDescription
	}
	meta := NewMetadata(cleaned, "")
	meta.Source = source
	return cleaned, meta, nil
}
