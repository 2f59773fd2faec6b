package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jonathan/resume-analyzer/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// URLOptions configures FromURLWithOptions.
type URLOptions struct {
	// UseBrowser re-renders pages with too little text in headless Chrome.
	UseBrowser bool
	Verbose    bool
	Fetch      *fetch.Options
	// Render overrides the headless renderer; used by tests.
	Render func(ctx context.Context, url string) (string, error)
}

// FromURL fetches a job posting and returns its cleaned text with metadata.
func FromURL(ctx context.Context, urlStr string, useBrowser bool, verbose bool) (string, *Metadata, error) {
	return FromURLWithOptions(ctx, urlStr, URLOptions{UseBrowser: useBrowser, Verbose: verbose})
}

// FromURLWithOptions fetches a job posting using platform-specific selectors. Pages whose
// text is shorter than fetch.MinContentLength are re-rendered in a browser when enabled;
// a failed render keeps the HTTP content.
func FromURLWithOptions(ctx context.Context, urlStr string, opts URLOptions) (string, *Metadata, error) {
	verbose := opts.Verbose
	platform := fetch.DetectPlatform(urlStr)
	if verbose {
		log.Printf("[VERBOSE] URL: %s", urlStr)
		log.Printf("[VERBOSE] Detected platform: %s", platform)
	}

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	if verbose {
		log.Printf("[VERBOSE] Fetched %d bytes (%s)", len(result.HTML), result.ContentType)
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	html := result.HTML
	var textContent string
	if result.IsHTML() {
		textContent, err = fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
		}
	} else {
		textContent = result.HTML
	}
	if verbose {
		log.Printf("[VERBOSE] Extracted text: %d chars", len(textContent))
	}

	rendered := false
	if opts.UseBrowser && result.IsHTML() && fetch.ShouldUseBrowser(textContent) {
		if verbose {
			log.Printf("[VERBOSE] Content too short (%d chars < %d), falling back to browser rendering...",
				len(textContent), fetch.MinContentLength)
		}
		render := opts.Render
		if render == nil {
			render = func(ctx context.Context, url string) (string, error) {
				return fetch.WithBrowser(ctx, url, fetch.DefaultBrowserTimeout, verbose)
			}
		}
		browserHTML, browserErr := render(ctx, urlStr)
		switch {
		case browserErr != nil:
			if verbose {
				log.Printf("[VERBOSE] Browser rendering failed: %v, using HTTP content", browserErr)
			}
		default:
			browserText, extractErr := fetch.ExtractMainText(browserHTML, contentSelectors, noiseSelectors...)
			if extractErr != nil {
				if verbose {
					log.Printf("[VERBOSE] Browser content extraction failed: %v", extractErr)
				}
			} else if len(browserText) > len(textContent) {
				textContent = browserText
				html = browserHTML
				rendered = true
			}
		}
	}

	cleanedText := CleanText(textContent)
	if cleanedText == "" {
		return "", nil, fmt.Errorf("%w: no text found at %s", ErrContentExtractionFailed, urlStr)
	}

	metadata := NewMetadata(cleanedText, urlStr)
	metadata.Source = SourceURL
	metadata.Platform = string(platform)
	metadata.Rendered = rendered
	if result.IsHTML() {
		metadata.Title = fetch.Title(html)
	}
	return cleanedText, metadata, nil
}
