package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/brief"
)

// Ensure LoggingBrowser implements brief.Browser.
var _ brief.Browser = (*LoggingBrowser)(nil)

// LoggingBrowser wraps a Browser with logging of tab operations.
type LoggingBrowser struct {
	next   brief.Browser
	logger *slog.Logger
}

// NewLoggingBrowser creates a new LoggingBrowser.
func NewLoggingBrowser(next brief.Browser, logger *slog.Logger) *LoggingBrowser {
	return &LoggingBrowser{next: next, logger: logger}
}

// ActiveTab logs the tab that was found.
func (b *LoggingBrowser) ActiveTab(ctx context.Context) (tab *brief.Tab, err error) {
	defer func(begin time.Time) {
		var id, url string
		if tab != nil {
			id, url = tab.ID, tab.URL
		}
		b.logger.Info("active tab",
			"tab", id,
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.next.ActiveTab(ctx)
}

// OpenTab logs the URL being opened and the new tab's ID.
func (b *LoggingBrowser) OpenTab(ctx context.Context, url string) (tab *brief.Tab, err error) {
	defer func(begin time.Time) {
		var id string
		if tab != nil {
			id = tab.ID
		}
		b.logger.Info("open tab",
			"url", url,
			"tab", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.next.OpenTab(ctx, url)
}

// Subscribe delegates to the wrapped browser.
func (b *LoggingBrowser) Subscribe(ctx context.Context) (<-chan brief.TabUpdate, func()) {
	return b.next.Subscribe(ctx)
}

// Document logs attachment to a tab at debug level.
func (b *LoggingBrowser) Document(ctx context.Context, tabID string) (doc brief.Document, err error) {
	defer func(begin time.Time) {
		b.logger.Debug("attach tab",
			"tab", tabID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.next.Document(ctx, tabID)
}

// Close delegates to the wrapped browser.
func (b *LoggingBrowser) Close() error {
	return b.next.Close()
}
