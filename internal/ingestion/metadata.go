package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"
)

// Source says where a job description came from.
type Source string

const (
	SourceText  Source = "text"
	SourceFile  Source = "file"
	SourceStdin Source = "stdin"
	SourceURL   Source = "url"
)

// Metadata describes an ingested job description.
type Metadata struct {
	Source    Source `json:"source"`
	URL       string `json:"url,omitempty"`
	Path      string `json:"path,omitempty"`
	Platform  string `json:"platform,omitempty"`
	Title     string `json:"title,omitempty"`
	Rendered  bool   `json:"rendered,omitempty"` // fetched through the headless browser
	Chars     int    `json:"chars"`
	Timestamp string `json:"timestamp"` // RFC3339
	Hash      string `json:"hash"`      // SHA256 hex digest of the cleaned text
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content string, url string) *Metadata {
	return &Metadata{
		URL:       url,
		Chars:     utf8.RuneCountInString(content),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
