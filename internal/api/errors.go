package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an API failure for user messaging.
type Kind string

const (
	// KindNetwork means the server could not be reached.
	KindNetwork Kind = "network"
	// KindUnauthorized covers 401 and 403: the session is missing or expired.
	KindUnauthorized Kind = "unauthorized"
	// KindValidation covers 400-class request problems.
	KindValidation Kind = "validation"
	// KindNotFound covers 404.
	KindNotFound Kind = "not_found"
	// KindServer covers 5xx, including AI analysis failures.
	KindServer Kind = "server"
	// KindUnknown is everything else.
	KindUnknown Kind = "unknown"
)

// Error is returned for every failed API call.
type Error struct {
	Method  string
	Path    string
	Status  int // 0 when no response was received
	Kind    Kind
	Message string // server-provided detail, if any
	Cause   error
}

func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", e.Method, e.Path)
	if e.Status != 0 {
		fmt.Fprintf(&sb, ": HTTP %d", e.Status)
	}
	if e.Message != "" {
		fmt.Fprintf(&sb, ": %s", e.Message)
	}
	if e.Cause != nil {
		fmt.Fprintf(&sb, ": %v", e.Cause)
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindForStatus maps an HTTP status code to a Kind.
func KindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return KindUnauthorized
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusBadRequest, status == http.StatusConflict,
		status == http.StatusUnprocessableEntity, status == http.StatusRequestEntityTooLarge:
		return KindValidation
	case status >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}

// Classify returns the Kind of err. Context deadlines count as network failures.
func Classify(err error) Kind {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindNetwork
	}
	return KindUnknown
}

// IsAuthError reports whether err is a 401/403 from the backend.
func IsAuthError(err error) bool {
	return Classify(err) == KindUnauthorized
}

// UserMessage renders err as the single line shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var detail string
	var apiErr *Error
	if errors.As(err, &apiErr) {
		detail = apiErr.Message
	}

	switch Classify(err) {
	case KindNetwork:
		return "Cannot reach the server. Check your connection and the API URL."
	case KindUnauthorized:
		if apiErr != nil && (apiErr.Path == PathLogin || apiErr.Path == PathRegister) {
			if detail != "" {
				return detail
			}
			return "Invalid email or password."
		}
		return "Your session has expired. Please log in again."
	case KindValidation:
		if detail != "" {
			return detail
		}
		return "The request was rejected as invalid."
	case KindNotFound:
		if detail != "" {
			return "Not found: " + detail
		}
		return "The requested item was not found."
	case KindServer:
		msg := "The server failed to process the request; the AI analysis may be unavailable. Please try again later."
		if detail != "" {
			msg += " (" + detail + ")"
		}
		return msg
	default:
		if apiErr == nil {
			return err.Error()
		}
		return "An error occurred. Please try again."
	}
}

// maxMessageLen caps server text echoed back to the user.
const maxMessageLen = 300

// errorMessage extracts a human readable message from an error body.
// The backend answers with {"error": "..."}, {"message": "..."}, or a bare string.
func errorMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil {
		for _, key := range []string{"error", "message", "detail"} {
			if s, ok := obj[key].(string); ok && s != "" {
				return truncate(s)
			}
		}
		return ""
	}

	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return truncate(s)
	}

	if strings.HasPrefix(trimmed, "<") {
		// HTML error pages from proxies carry no useful detail.
		return ""
	}
	return truncate(trimmed)
}

// truncate caps s at maxMessageLen runes so multi-byte characters are never split.
func truncate(s string) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) > maxMessageLen {
		return string(runes[:maxMessageLen-3]) + "..."
	}
	return s
}
