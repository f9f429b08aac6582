package brief

import (
	"context"
	"time"
)

// Settings holds the user's stored credentials and prompt customizations.
type Settings struct {
	APIKey         string       `json:"apikey"`
	ShortPrompt    string       `json:"shortPrompt"`
	DetailedPrompt string       `json:"detailedPrompt"`
	PromptChanged  PromptStatus `json:"promptChanged"`
}

// SettingsUpdate represents fields that can be updated on Settings.
// PromptChanged is never set directly; it is derived from the prompts.
type SettingsUpdate struct {
	APIKey         *string `json:"apikey"`
	ShortPrompt    *string `json:"shortPrompt"`
	DetailedPrompt *string `json:"detailedPrompt"`
}

// SettingsService represents a service for managing settings.
type SettingsService interface {
	// FindSettings returns the stored settings. Missing values are zero,
	// with PromptChanged defaulting to PromptNone.
	FindSettings(ctx context.Context) (*Settings, error)

	// UpdateSettings applies upd and returns the resulting settings.
	// Returns EINVALID if an API key is supplied but blank.
	UpdateSettings(ctx context.Context, upd SettingsUpdate) (*Settings, error)
}

// Summary is a generated summary of one page.
type Summary struct {
	ID        string      `json:"id"`
	SourceURL string      `json:"sourceUrl"`
	Kind      SummaryKind `json:"kind"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"createdAt"`

	// SourceHash fingerprints the page text the summary was made from.
	SourceHash string `json:"sourceHash,omitempty"`
}

// Validate returns an error if the summary contains invalid fields.
func (s *Summary) Validate() error {
	if err := s.Kind.Validate(); err != nil {
		return err
	}
	if s.Text == "" {
		return Errorf(EINVALID, "summary text required")
	}
	return nil
}

// SummaryService persists generated summaries.
type SummaryService interface {
	// CreateSummary stores a new summary, assigning its ID and CreatedAt.
	CreateSummary(ctx context.Context, summary *Summary) error

	// LastSummary returns the most recently stored summary.
	// Returns ENOTFOUND if none exists.
	LastSummary(ctx context.Context) (*Summary, error)

	// FindSummary returns the newest summary of the given kind made from
	// text with sourceHash. Returns ENOTFOUND if none exists.
	FindSummary(ctx context.Context, sourceHash string, kind SummaryKind) (*Summary, error)
}
