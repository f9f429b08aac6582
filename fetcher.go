package brief

import "context"

// Fetcher retrieves the HTML of a page outside any open tab.
// Implementations may render JavaScript before returning.
type Fetcher interface {
	// Fetch returns the HTML served at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// Snapshotter turns a URL into a static Document that can be read like the
// document of an open tab.
type Snapshotter interface {
	Snapshot(ctx context.Context, url string) (Document, error)
}
