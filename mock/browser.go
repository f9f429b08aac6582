package mock

import (
	"context"

	"github.com/fwojciec/brief"
)

var _ brief.Browser = (*Browser)(nil)

// Browser is a mock implementation of brief.Browser.
type Browser struct {
	ActiveTabFn func(ctx context.Context) (*brief.Tab, error)
	OpenTabFn   func(ctx context.Context, url string) (*brief.Tab, error)
	SubscribeFn func(ctx context.Context) (<-chan brief.TabUpdate, func())
	DocumentFn  func(ctx context.Context, tabID string) (brief.Document, error)
	CloseFn     func() error
}

func (b *Browser) ActiveTab(ctx context.Context) (*brief.Tab, error) {
	return b.ActiveTabFn(ctx)
}

func (b *Browser) OpenTab(ctx context.Context, url string) (*brief.Tab, error) {
	return b.OpenTabFn(ctx, url)
}

func (b *Browser) Subscribe(ctx context.Context) (<-chan brief.TabUpdate, func()) {
	return b.SubscribeFn(ctx)
}

func (b *Browser) Document(ctx context.Context, tabID string) (brief.Document, error) {
	return b.DocumentFn(ctx, tabID)
}

func (b *Browser) Close() error {
	return b.CloseFn()
}
