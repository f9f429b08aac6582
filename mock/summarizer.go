package mock

import (
	"context"

	"github.com/fwojciec/brief"
)

var _ brief.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of brief.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, text string, kind brief.SummaryKind, apiKey string) (string, error)
}

func (s *Summarizer) Summarize(ctx context.Context, text string, kind brief.SummaryKind, apiKey string) (string, error) {
	return s.SummarizeFn(ctx, text, kind, apiKey)
}

var _ brief.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of brief.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (c *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return c.CountTokensFn(ctx, text)
}
