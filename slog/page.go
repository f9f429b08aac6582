package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/brief"
)

// Ensure LoggingPageHost implements brief.PageHost.
var _ brief.PageHost = (*LoggingPageHost)(nil)

// LoggingPageHost wraps a PageHost with logging of every message routed
// to a page agent.
type LoggingPageHost struct {
	next   brief.PageHost
	logger *slog.Logger
}

// NewLoggingPageHost creates a new LoggingPageHost.
func NewLoggingPageHost(next brief.PageHost, logger *slog.Logger) *LoggingPageHost {
	return &LoggingPageHost{next: next, logger: logger}
}

// Inject delegates to the wrapped host.
func (h *LoggingPageHost) Inject(ctx context.Context, tabID string) (err error) {
	defer func(begin time.Time) {
		h.logger.Debug("inject",
			"tab", tabID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return h.next.Inject(ctx, tabID)
}

// Reset delegates to the wrapped host.
func (h *LoggingPageHost) Reset(ctx context.Context, tabID string) (err error) {
	defer func(begin time.Time) {
		h.logger.Debug("reset",
			"tab", tabID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return h.next.Reset(ctx, tabID)
}

// GetText delegates to the wrapped host and logs the text size.
func (h *LoggingPageHost) GetText(ctx context.Context, tabID string) (resp *brief.GetTextResponse, err error) {
	defer func(begin time.Time) {
		var chars int
		var failure string
		if resp != nil {
			chars = len(resp.Text)
			failure = resp.Error
		}
		h.logger.Info(brief.ActionGetText,
			"tab", tabID,
			"chars", chars,
			"failure", failure,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return h.next.GetText(ctx, tabID)
}

// GoToAI delegates to the wrapped host and logs the outcome.
func (h *LoggingPageHost) GoToAI(ctx context.Context, tabID string, req *brief.GoToAIRequest) (resp *brief.GoToAIResponse, err error) {
	defer func(begin time.Time) {
		var success bool
		var code, message string
		if resp != nil {
			success = resp.Success
			code = resp.Code
			message = resp.Message
		}
		h.logger.Info(brief.ActionGoToAI,
			"tab", tabID,
			"prompt_chars", len(req.Prompt),
			"success", success,
			"code", code,
			"message", message,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return h.next.GoToAI(ctx, tabID, req)
}
