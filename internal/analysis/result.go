// Package analysis interprets analysis results and runs the upload-then-analyze flow.
package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Result is the decoded AI analysis payload.
type Result struct {
	Score         *float64 `json:"score,omitempty"`
	Strengths     []string `json:"strengths"`
	MissingSkills []string `json:"missing_skills"`
	Suggestions   string   `json:"suggestions"`

	// Valid is false when the payload did not decode or did not match the result schema.
	Valid bool `json:"-"`
	// Problems lists schema violations, or the decode error.
	Problems []string `json:"-"`
}

// IsEmpty reports whether the result carries nothing to show.
func (r Result) IsEmpty() bool {
	return len(r.Strengths) == 0 && len(r.MissingSkills) == 0 && strings.TrimSpace(r.Suggestions) == ""
}

// ParseResult decodes the result text of an analysis. Model output wrapped in a
// ```json fence is accepted. Text that does not decode yields an empty, invalid Result.
func ParseResult(raw string) Result {
	text := stripFence(raw)
	if text == "" {
		return Result{Problems: []string{"result is empty"}}
	}

	var fields struct {
		Score         json.RawMessage `json:"score"`
		Strengths     json.RawMessage `json:"strengths"`
		MissingSkills json.RawMessage `json:"missing_skills"`
		Suggestions   json.RawMessage `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return Result{Problems: []string{fmt.Sprintf("failed to parse result: %v", err)}}
	}

	// Fields are decoded one by one so a mistyped field does not hide the others.
	res := Result{
		Score:         decodeScore(fields.Score),
		Strengths:     decodeList(fields.Strengths),
		MissingSkills: decodeList(fields.MissingSkills),
		Suggestions:   decodeText(fields.Suggestions),
		Valid:         true,
	}
	if err := schemas.ValidateAnalysisResult(text); err != nil {
		res.Valid = false
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			res.Problems = validationErr.Problems()
		} else {
			res.Problems = []string{err.Error()}
		}
	}
	return res
}

// ResultOf parses the result carried by a stored analysis.
func ResultOf(a *types.Analysis) Result {
	if a == nil {
		return Result{Problems: []string{"result is empty"}}
	}
	return ParseResult(a.ResultText())
}

func decodeScore(raw json.RawMessage) *float64 {
	var score float64
	if err := json.Unmarshal(raw, &score); err != nil {
		return nil
	}
	return &score
}

// decodeList accepts an array of strings, an array of other values (rendered as text),
// or a single string.
func decodeList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err == nil {
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s := decodeText(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if s := decodeText(raw); s != "" {
		return []string{s}
	}
	return nil
}

// decodeText accepts a string, joins an array one item per line, and renders any other
// non-null value as its JSON text.
func decodeText(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err == nil {
		lines := make([]string, 0, len(items))
		for _, item := range items {
			if line := decodeText(item); line != "" {
				lines = append(lines, line)
			}
		}
		return strings.Join(lines, "\n")
	}
	return trimmed
}

func stripFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		// drop the language tag line
		text = text[nl+1:]
	} else {
		text = strings.TrimPrefix(text, "json")
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
