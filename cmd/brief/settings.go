package main

import (
	"context"

	"github.com/fwojciec/brief"
)

// envKeySettings supplies an API key from the environment when none is
// stored. A stored key always wins.
type envKeySettings struct {
	next brief.SettingsService
	key  string
}

func (s *envKeySettings) FindSettings(ctx context.Context) (*brief.Settings, error) {
	settings, err := s.next.FindSettings(ctx)
	if err != nil {
		return nil, err
	}
	if settings.APIKey == "" {
		settings.APIKey = s.key
	}
	return settings, nil
}

func (s *envKeySettings) UpdateSettings(ctx context.Context, upd brief.SettingsUpdate) (*brief.Settings, error) {
	return s.next.UpdateSettings(ctx, upd)
}
