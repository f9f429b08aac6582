package rod

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/brief"
)

// DefaultFetchTimeout bounds a single rendered fetch.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements brief.Fetcher at compile time.
var _ brief.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using headless Chrome.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	timeout time.Duration
	closed  atomic.Bool
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*fetcherConfig)

type fetcherConfig struct {
	timeout  time.Duration
	maxPages int64
}

// WithFetchTimeout sets the timeout for a single fetch.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(c *fetcherConfig) {
		c.timeout = d
	}
}

// WithRecycleAfter sets how many pages are fetched before the browser is
// restarted.
func WithRecycleAfter(n int64) FetcherOption {
	return func(c *fetcherConfig) {
		c.maxPages = n
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	cfg := fetcherConfig{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	manager, err := NewBrowserManager(WithMaxPages(cfg.maxPages))
	if err != nil {
		return nil, err
	}

	return &Fetcher{manager: manager, timeout: cfg.timeout}, nil
}

// Fetch navigates a stealth page to url and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.closed.Load() {
		return "", brief.Errorf(brief.EINVALID, "fetcher is closed")
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.manager.NewPage()
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", ctxErr(ctx, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", ctxErr(ctx, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", ctxErr(ctx, err)
	}

	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// ctxErr prefers the context's error so callers can match on
// context.Canceled and context.DeadlineExceeded.
func ctxErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", ctx.Err(), err)
	}
	return err
}
