package goquery

import (
	"context"
	"fmt"
	"html"

	"github.com/fwojciec/brief"
)

// Ensure Snapshotter implements brief.Snapshotter at compile time.
var _ brief.Snapshotter = (*Snapshotter)(nil)

// Snapshotter fetches a page and parses it into a Document.
type Snapshotter struct {
	Fetcher brief.Fetcher

	// Readable, if set, reduces the page to its main content, wrapped in an
	// article element. Pages it cannot reduce are kept whole.
	Readable brief.ReadableExtractor
}

// Snapshot fetches url and returns its document.
func (s *Snapshotter) Snapshot(ctx context.Context, url string) (brief.Document, error) {
	src, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	if s.Readable != nil {
		if r, err := s.Readable.Extract(src); err == nil {
			src = "<html><head><title>" + html.EscapeString(r.Title) + "</title></head><body><article>" +
				r.ContentHTML + "</article></body></html>"
		}
	}

	return NewDocument(url, src)
}
