package fetch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the minimum extracted text length to consider HTTP fetch successful.
// Shorter text suggests a JavaScript-rendered page.
const MinContentLength = 500

// DefaultBrowserTimeout bounds a headless render.
const DefaultBrowserTimeout = 45 * time.Second

// renderSettle is how long scripts get to populate the page after body is ready.
const renderSettle = 3 * time.Second

// ShouldUseBrowser returns true if the extracted text is too short,
// indicating the page is likely a JavaScript-rendered SPA.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// WithBrowser renders a page in headless Chrome and returns the rendered HTML.
// Chrome or Chromium must be installed.
func WithBrowser(ctx context.Context, url string, timeout time.Duration, verbose bool) (string, error) {
	if timeout <= 0 {
		timeout = DefaultBrowserTimeout
	}
	if verbose {
		log.Printf("[BROWSER] Starting headless browser for: %s", url)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(DefaultUserAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(renderSettle),
		// Expand collapsed descriptions ("Show more") where the board uses them.
		chromedp.ActionFunc(func(ctx context.Context) error {
			var clicked bool
			_ = chromedp.Evaluate(`(() => {
				const b = document.querySelector('button.show-more-less-html__button, button[aria-label*="more" i]');
				if (b) { b.click(); return true; }
				return false;
			})()`, &clicked).Do(ctx)
			return nil
		}),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	if verbose {
		log.Printf("[BROWSER] Rendered HTML: %d bytes", len(html))
	}
	return html, nil
}
