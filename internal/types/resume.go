package types

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
)

// Resume is an uploaded resume as listed by GET /resume/my-resumes.
type Resume struct {
	ID       int64  `json:"id"`
	FileName string `json:"fileName"`
}

// AnalyzeRequest is the body of POST /analyze/:resumeId.
type AnalyzeRequest struct {
	JobDescription string `json:"jobDescription" validate:"required"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Analysis is a stored analysis of a resume against a job description.
// Result usually holds a JSON-encoded string; some backends return the object inline.
type Analysis struct {
	ID             int64           `json:"id"`
	Resume         *Resume         `json:"resume,omitempty"`
	JobDescription string          `json:"jobDescription"`
	Score          float64         `json:"score"`
	Result         json.RawMessage `json:"result,omitempty"`
	CreatedAt      string          `json:"createdAt,omitempty"`
}

// ResultText returns the analysis payload as JSON text, unwrapping the string encoding
// when the backend sent the result as a JSON string.
func (a *Analysis) ResultText() string {
	if len(a.Result) == 0 || string(a.Result) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(a.Result, &s); err == nil {
		return s
	}
	return string(a.Result)
}

// createdAtLayouts covers RFC3339 and zone-less local timestamps.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// CreatedTime parses CreatedAt. The zero time is returned when it is absent or unparsable.
func (a *Analysis) CreatedTime() time.Time {
	return parseTimestamp(a.CreatedAt)
}

func parseTimestamp(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
