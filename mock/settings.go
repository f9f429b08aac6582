package mock

import (
	"context"

	"github.com/fwojciec/brief"
)

var _ brief.SettingsService = (*SettingsService)(nil)

// SettingsService is a mock implementation of brief.SettingsService.
type SettingsService struct {
	FindSettingsFn   func(ctx context.Context) (*brief.Settings, error)
	UpdateSettingsFn func(ctx context.Context, upd brief.SettingsUpdate) (*brief.Settings, error)
}

func (s *SettingsService) FindSettings(ctx context.Context) (*brief.Settings, error) {
	return s.FindSettingsFn(ctx)
}

func (s *SettingsService) UpdateSettings(ctx context.Context, upd brief.SettingsUpdate) (*brief.Settings, error) {
	return s.UpdateSettingsFn(ctx, upd)
}

var _ brief.SummaryService = (*SummaryService)(nil)

// SummaryService is a mock implementation of brief.SummaryService.
type SummaryService struct {
	CreateSummaryFn func(ctx context.Context, summary *brief.Summary) error
	LastSummaryFn   func(ctx context.Context) (*brief.Summary, error)
	FindSummaryFn   func(ctx context.Context, sourceHash string, kind brief.SummaryKind) (*brief.Summary, error)
}

func (s *SummaryService) CreateSummary(ctx context.Context, summary *brief.Summary) error {
	return s.CreateSummaryFn(ctx, summary)
}

func (s *SummaryService) LastSummary(ctx context.Context) (*brief.Summary, error) {
	return s.LastSummaryFn(ctx)
}

func (s *SummaryService) FindSummary(ctx context.Context, sourceHash string, kind brief.SummaryKind) (*brief.Summary, error) {
	return s.FindSummaryFn(ctx, sourceHash, kind)
}
