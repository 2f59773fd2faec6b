// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultAPIURL is the backend the original web client talks to.
	DefaultAPIURL = "http://localhost:8080"
	// DefaultTimeoutSeconds bounds a single API request. Analysis calls wait on the AI backend.
	DefaultTimeoutSeconds = 60
	// DefaultMaxUploadMB is the largest resume file the CLI will upload.
	DefaultMaxUploadMB = 10
)

// Environment variables read by FromEnv.
const (
	EnvAPIURL         = "RESUME_ANALYZER_API_URL"
	EnvAPIPrefix      = "RESUME_ANALYZER_API_PREFIX"
	EnvTokenFile      = "RESUME_ANALYZER_TOKEN_FILE"
	EnvTokenKey       = "RESUME_ANALYZER_TOKEN_KEY"
	EnvTimeoutSeconds = "RESUME_ANALYZER_TIMEOUT_SECONDS"
	EnvMaxUploadMB    = "RESUME_ANALYZER_MAX_UPLOAD_MB"
	EnvUseBrowser     = "RESUME_ANALYZER_USE_BROWSER"
	EnvVerbose        = "RESUME_ANALYZER_VERBOSE"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values fall back to the environment and then to Defaults.
type Config struct {
	// Backend
	APIURL    string `json:"api_url,omitempty"`    // Base URL of the backend, e.g. http://localhost:8080
	APIPrefix string `json:"api_prefix,omitempty"` // Prefix for resource endpoints, e.g. /api

	// Session
	TokenFile string `json:"token_file,omitempty"` // Where the bearer token is persisted
	TokenKey  string `json:"token_key,omitempty"`  // Optional passphrase sealing the token file

	// Limits
	TimeoutSeconds int `json:"timeout_seconds,omitempty"` // Per-request timeout
	MaxUploadMB    int `json:"max_upload_mb,omitempty"`   // Upload size limit

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Use headless browser for JS-rendered job pages
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed debug information

	// explicit holds the JSON names of fields set on purpose, even to their zero value.
	explicit map[string]bool
}

// Field keys accepted by MarkSet and IsSet. They match the JSON names.
const (
	KeyAPIURL         = "api_url"
	KeyAPIPrefix      = "api_prefix"
	KeyTokenFile      = "token_file"
	KeyTokenKey       = "token_key"
	KeyTimeoutSeconds = "timeout_seconds"
	KeyMaxUploadMB    = "max_upload_mb"
	KeyUseBrowser     = "use_browser"
	KeyVerbose        = "verbose"
)

var knownKeys = map[string]bool{
	KeyAPIURL: true, KeyAPIPrefix: true, KeyTokenFile: true, KeyTokenKey: true,
	KeyTimeoutSeconds: true, KeyMaxUploadMB: true, KeyUseBrowser: true, KeyVerbose: true,
}

// MarkSet records that the field named key was set explicitly, so MergeWithDefaults
// keeps it even when it holds the zero value (e.g. verbose=false, api_prefix="").
func (c *Config) MarkSet(key string) {
	if c.explicit == nil {
		c.explicit = make(map[string]bool)
	}
	c.explicit[key] = true
}

// IsSet reports whether the field named key was set explicitly.
func (c *Config) IsSet(key string) bool {
	return c.explicit[key]
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	var present map[string]json.RawMessage
	if err := json.Unmarshal(data, &present); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	for key := range present {
		if knownKeys[key] {
			cfg.MarkSet(key)
		}
	}

	return &cfg, nil
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		APIURL:         DefaultAPIURL,
		TokenFile:      DefaultTokenFile(),
		TimeoutSeconds: DefaultTimeoutSeconds,
		MaxUploadMB:    DefaultMaxUploadMB,
	}
}

// DefaultTokenFile returns the per-user token location, falling back to the
// working directory when no user config directory is available.
func DefaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return filepath.Join(".resume-analyzer", "token.json")
	}
	return filepath.Join(dir, "resume-analyzer", "token.json")
}

// FromEnv builds a Config from RESUME_ANALYZER_* environment variables.
// Unset or unparsable values are left at their zero value and are not marked as set.
func FromEnv() Config {
	cfg := Config{
		APIURL:    strings.TrimSpace(os.Getenv(EnvAPIURL)),
		APIPrefix: strings.TrimSpace(os.Getenv(EnvAPIPrefix)),
		TokenFile: strings.TrimSpace(os.Getenv(EnvTokenFile)),
		TokenKey:  os.Getenv(EnvTokenKey),
	}
	if n, err := strconv.Atoi(os.Getenv(EnvTimeoutSeconds)); err == nil {
		cfg.TimeoutSeconds = n
		cfg.MarkSet(KeyTimeoutSeconds)
	}
	if n, err := strconv.Atoi(os.Getenv(EnvMaxUploadMB)); err == nil {
		cfg.MaxUploadMB = n
		cfg.MarkSet(KeyMaxUploadMB)
	}
	if b, err := strconv.ParseBool(os.Getenv(EnvUseBrowser)); err == nil {
		cfg.UseBrowser = b
		cfg.MarkSet(KeyUseBrowser)
	}
	if b, err := strconv.ParseBool(os.Getenv(EnvVerbose)); err == nil {
		cfg.Verbose = b
		cfg.MarkSet(KeyVerbose)
	}
	return cfg
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.APIURL != "" {
		u, err := url.Parse(c.APIURL)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("config error: 'api_url' must be an absolute http(s) URL, got %q", c.APIURL)
		}
	}

	if c.APIPrefix != "" && !strings.HasPrefix(c.APIPrefix, "/") {
		return fmt.Errorf("config error: 'api_prefix' must start with '/', got %q", c.APIPrefix)
	}

	// Validate numeric ranges
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
	}
	if c.MaxUploadMB < 0 {
		return fmt.Errorf("config error: 'max_upload_mb' must be non-negative")
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults. A field
// is kept when it is non-zero or was marked with MarkSet.
// Callers layer flags over the config file, the file over FromEnv, and FromEnv over Defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c
	result.explicit = make(map[string]bool, len(c.explicit)+len(defaults.explicit))
	for key := range c.explicit {
		result.explicit[key] = true
	}

	// fill reports whether key takes the default, inheriting its explicit mark.
	fill := func(key string, zero bool) bool {
		if c.IsSet(key) || !zero {
			return false
		}
		if defaults.IsSet(key) {
			result.explicit[key] = true
		}
		return true
	}

	if fill(KeyAPIURL, result.APIURL == "") {
		result.APIURL = defaults.APIURL
	}
	if fill(KeyAPIPrefix, result.APIPrefix == "") {
		result.APIPrefix = defaults.APIPrefix
	}
	if fill(KeyTokenFile, result.TokenFile == "") {
		result.TokenFile = defaults.TokenFile
	}
	if fill(KeyTokenKey, result.TokenKey == "") {
		result.TokenKey = defaults.TokenKey
	}
	if fill(KeyTimeoutSeconds, result.TimeoutSeconds == 0) {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if fill(KeyMaxUploadMB, result.MaxUploadMB == 0) {
		result.MaxUploadMB = defaults.MaxUploadMB
	}
	if fill(KeyUseBrowser, !result.UseBrowser) {
		result.UseBrowser = defaults.UseBrowser
	}
	if fill(KeyVerbose, !result.Verbose) {
		result.Verbose = defaults.Verbose
	}

	return result
}

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// MaxUploadBytes returns the upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	mb := c.MaxUploadMB
	if mb <= 0 {
		mb = DefaultMaxUploadMB
	}
	return int64(mb) << 20
}
