package mock

import (
	"context"

	"github.com/fwojciec/brief"
)

var _ brief.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of brief.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ brief.ReadableExtractor = (*ReadableExtractor)(nil)

// ReadableExtractor is a mock implementation of brief.ReadableExtractor.
type ReadableExtractor struct {
	ExtractFn func(rawHTML string) (*brief.Readable, error)
}

func (e *ReadableExtractor) Extract(rawHTML string) (*brief.Readable, error) {
	return e.ExtractFn(rawHTML)
}

var _ brief.Snapshotter = (*Snapshotter)(nil)

// Snapshotter is a mock implementation of brief.Snapshotter.
type Snapshotter struct {
	SnapshotFn func(ctx context.Context, url string) (brief.Document, error)
}

func (s *Snapshotter) Snapshot(ctx context.Context, url string) (brief.Document, error) {
	return s.SnapshotFn(ctx, url)
}
