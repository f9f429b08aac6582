package mock

import (
	"context"

	"github.com/fwojciec/brief"
)

var _ brief.PageHost = (*PageHost)(nil)

// PageHost is a mock implementation of brief.PageHost.
type PageHost struct {
	InjectFn  func(ctx context.Context, tabID string) error
	ResetFn   func(ctx context.Context, tabID string) error
	GetTextFn func(ctx context.Context, tabID string) (*brief.GetTextResponse, error)
	GoToAIFn  func(ctx context.Context, tabID string, req *brief.GoToAIRequest) (*brief.GoToAIResponse, error)
}

func (h *PageHost) Inject(ctx context.Context, tabID string) error {
	return h.InjectFn(ctx, tabID)
}

func (h *PageHost) Reset(ctx context.Context, tabID string) error {
	return h.ResetFn(ctx, tabID)
}

func (h *PageHost) GetText(ctx context.Context, tabID string) (*brief.GetTextResponse, error) {
	return h.GetTextFn(ctx, tabID)
}

func (h *PageHost) GoToAI(ctx context.Context, tabID string, req *brief.GoToAIRequest) (*brief.GoToAIResponse, error) {
	return h.GoToAIFn(ctx, tabID, req)
}
