package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/brief"
)

// SummaryFlow summarizes the active tab with the configured Summarizer and
// keeps the result as the last summary. A page whose text was already
// summarized with the same kind reuses the stored summary instead of
// calling the Summarizer again.
type SummaryFlow struct {
	Browser    brief.Browser
	Pages      brief.PageHost
	Settings   brief.SettingsService
	Summarizer brief.Summarizer
	Summaries  brief.SummaryService
	Logger     *slog.Logger
}

// Summarize returns a new summary of the active tab.
//
// Returns EMISSINGCREDENTIAL if no API key is stored, ENOACTIVETAB if no
// tab is active and ENOTEXT if the tab yields no text.
func (f *SummaryFlow) Summarize(ctx context.Context, kind brief.SummaryKind) (summary *brief.Summary, err error) {
	var cached bool
	defer func(begin time.Time) {
		f.logger().Info("summarize",
			"type", kind,
			"cached", cached,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	if err := kind.Validate(); err != nil {
		return nil, err
	}

	settings, err := f.Settings.FindSettings(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(settings.APIKey) == "" {
		return nil, brief.Errorf(brief.EMISSINGCREDENTIAL, "%s", brief.MissingAPIKey)
	}

	tab, err := f.Browser.ActiveTab(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := f.Pages.GetText(ctx, tab.ID)
	if err != nil {
		return nil, brief.Errorf(brief.ENOTEXT, "%s", brief.PageUnreachable)
	}
	if resp.Error != "" || strings.TrimSpace(resp.Text) == "" {
		return nil, brief.Errorf(brief.ENOTEXT, "%s", brief.NoTextOnPage)
	}

	hash := sourceHash(resp.Text)
	text, cached, err := f.reuse(ctx, hash, kind)
	if err != nil {
		return nil, err
	}
	if !cached {
		text, err = f.Summarizer.Summarize(ctx, resp.Text, kind, settings.APIKey)
		if err != nil {
			return nil, err
		}
	}

	summary = &brief.Summary{SourceURL: tab.URL, Kind: kind, Text: text, SourceHash: hash}
	if err := f.Summaries.CreateSummary(ctx, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// reuse returns the text of a stored summary for the same page text and
// kind. Placeholder results are never reused.
func (f *SummaryFlow) reuse(ctx context.Context, hash string, kind brief.SummaryKind) (string, bool, error) {
	prev, err := f.Summaries.FindSummary(ctx, hash, kind)
	if brief.ErrorCode(err) == brief.ENOTFOUND {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if brief.IsPlaceholder(prev.Text) {
		return "", false, nil
	}
	return prev.Text, true, nil
}

// sourceHash fingerprints page text for summary reuse.
func sourceHash(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}

func (f *SummaryFlow) logger() *slog.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return slog.New(slog.DiscardHandler)
}
