package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/brief"
)

// Ensure LoggingSettingsService implements brief.SettingsService.
var _ brief.SettingsService = (*LoggingSettingsService)(nil)

// LoggingSettingsService wraps a SettingsService with logging.
type LoggingSettingsService struct {
	next   brief.SettingsService
	logger *slog.Logger
}

// NewLoggingSettingsService creates a new LoggingSettingsService.
func NewLoggingSettingsService(next brief.SettingsService, logger *slog.Logger) *LoggingSettingsService {
	return &LoggingSettingsService{next: next, logger: logger}
}

// FindSettings delegates to the wrapped service. Lookups log at debug level.
func (s *LoggingSettingsService) FindSettings(ctx context.Context) (settings *brief.Settings, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find settings",
			"has_key", settings != nil && settings.APIKey != "",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSettings(ctx)
}

// UpdateSettings delegates to the wrapped service and logs which fields
// were changed.
func (s *LoggingSettingsService) UpdateSettings(ctx context.Context, upd brief.SettingsUpdate) (settings *brief.Settings, err error) {
	defer func(begin time.Time) {
		var status brief.PromptStatus
		if settings != nil {
			status = settings.PromptChanged
		}
		s.logger.Info("update settings",
			"api_key", upd.APIKey != nil,
			"short_prompt", upd.ShortPrompt != nil,
			"detailed_prompt", upd.DetailedPrompt != nil,
			"prompt_changed", status,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpdateSettings(ctx, upd)
}

// Ensure LoggingSummaryService implements brief.SummaryService.
var _ brief.SummaryService = (*LoggingSummaryService)(nil)

// LoggingSummaryService wraps a SummaryService with logging.
type LoggingSummaryService struct {
	next   brief.SummaryService
	logger *slog.Logger
}

// NewLoggingSummaryService creates a new LoggingSummaryService.
func NewLoggingSummaryService(next brief.SummaryService, logger *slog.Logger) *LoggingSummaryService {
	return &LoggingSummaryService{next: next, logger: logger}
}

// CreateSummary delegates to the wrapped service and logs the stored ID.
func (s *LoggingSummaryService) CreateSummary(ctx context.Context, summary *brief.Summary) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create summary",
			"id", summary.ID,
			"kind", summary.Kind,
			"url", summary.SourceURL,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateSummary(ctx, summary)
}

// LastSummary delegates to the wrapped service.
func (s *LoggingSummaryService) LastSummary(ctx context.Context) (summary *brief.Summary, err error) {
	defer func(begin time.Time) {
		var id string
		if summary != nil {
			id = summary.ID
		}
		s.logger.Debug("last summary",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LastSummary(ctx)
}

// FindSummary delegates to the wrapped service and logs cache hits.
func (s *LoggingSummaryService) FindSummary(ctx context.Context, sourceHash string, kind brief.SummaryKind) (summary *brief.Summary, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find summary",
			"source_hash", sourceHash,
			"kind", kind,
			"hit", summary != nil,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.FindSummary(ctx, sourceHash, kind)
}
