package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fwojciec/brief"
)

// Setting keys, matching the names the settings were stored under by the
// browser extension.
const (
	keyAPIKey         = "apikey"
	keyShortPrompt    = "shortPrompt"
	keyDetailedPrompt = "detailedPrompt"
	keyPromptChanged  = "promptChanged"
)

// Compile-time interface verification.
var _ brief.SettingsService = (*SettingsService)(nil)

// SettingsService implements brief.SettingsService as a key/value table.
type SettingsService struct {
	db *DB
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(db *DB) *SettingsService {
	return &SettingsService{db: db}
}

// FindSettings returns the stored settings.
func (s *SettingsService) FindSettings(ctx context.Context) (*brief.Settings, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := brief.Settings{PromptChanged: brief.PromptNone}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		switch key {
		case keyAPIKey:
			settings.APIKey = value
		case keyShortPrompt:
			settings.ShortPrompt = value
		case keyDetailedPrompt:
			settings.DetailedPrompt = value
		case keyPromptChanged:
			if value != "" {
				settings.PromptChanged = brief.PromptStatus(value)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &settings, nil
}

// UpdateSettings applies upd in a single transaction. The prompt status is
// recomputed whenever a prompt changes.
func (s *SettingsService) UpdateSettings(ctx context.Context, upd brief.SettingsUpdate) (*brief.Settings, error) {
	if upd.APIKey != nil && strings.TrimSpace(*upd.APIKey) == "" {
		return nil, brief.Errorf(brief.EINVALID, "API key must not be empty")
	}

	settings, err := s.FindSettings(ctx)
	if err != nil {
		return nil, err
	}

	values := map[string]string{}
	if upd.APIKey != nil {
		settings.APIKey = strings.TrimSpace(*upd.APIKey)
		values[keyAPIKey] = settings.APIKey
	}
	if upd.ShortPrompt != nil {
		settings.ShortPrompt = strings.TrimSpace(*upd.ShortPrompt)
		values[keyShortPrompt] = settings.ShortPrompt
	}
	if upd.DetailedPrompt != nil {
		settings.DetailedPrompt = strings.TrimSpace(*upd.DetailedPrompt)
		values[keyDetailedPrompt] = settings.DetailedPrompt
	}
	if upd.ShortPrompt != nil || upd.DetailedPrompt != nil {
		settings.PromptChanged = brief.PromptStatusFor(settings.ShortPrompt, settings.DetailedPrompt)
		values[keyPromptChanged] = string(settings.PromptChanged)
	}
	if len(values) == 0 {
		return settings, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	for key, value := range values {
		if err := putSetting(ctx, tx, key, value); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return settings, nil
}

func putSetting(ctx context.Context, tx *sql.Tx, key, value string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
