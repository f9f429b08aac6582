package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/brief"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ brief.SummaryService = (*SummaryService)(nil)

// SummaryService implements brief.SummaryService using SQLite.
type SummaryService struct {
	db  *DB
	now func() time.Time
}

// NewSummaryService creates a new SummaryService.
func NewSummaryService(db *DB) *SummaryService {
	return &SummaryService{db: db, now: time.Now}
}

// CreateSummary stores a new summary.
func (s *SummaryService) CreateSummary(ctx context.Context, summary *brief.Summary) error {
	if err := summary.Validate(); err != nil {
		return err
	}

	summary.ID = uuid.New().String()
	summary.CreatedAt = s.now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO summaries (id, source_url, kind, text, created_at, source_hash)
		VALUES (?, ?, ?, ?, ?, ?)
	`, summary.ID, summary.SourceURL, string(summary.Kind), summary.Text,
		formatTime(summary.CreatedAt), summary.SourceHash)

	return err
}

// LastSummary returns the most recently stored summary.
func (s *SummaryService) LastSummary(ctx context.Context) (*brief.Summary, error) {
	return s.findOne(ctx, "", nil, "no summary stored")
}

// FindSummary returns the newest summary of kind made from text with
// sourceHash.
func (s *SummaryService) FindSummary(ctx context.Context, sourceHash string, kind brief.SummaryKind) (*brief.Summary, error) {
	if sourceHash == "" {
		return nil, brief.Errorf(brief.EINVALID, "source hash required")
	}
	return s.findOne(ctx, "WHERE source_hash = ? AND kind = ?",
		[]any{sourceHash, string(kind)}, "no summary for this text")
}

// findOne returns the newest summary matching where.
func (s *SummaryService) findOne(ctx context.Context, where string, args []any, notFound string) (*brief.Summary, error) {
	var summary brief.Summary
	var kind, createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, kind, text, created_at, source_hash
		FROM summaries
		`+where+`
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`, args...).Scan(&summary.ID, &summary.SourceURL, &kind, &summary.Text, &createdAt, &summary.SourceHash)

	if err == sql.ErrNoRows {
		return nil, brief.Errorf(brief.ENOTFOUND, "%s", notFound)
	}
	if err != nil {
		return nil, err
	}

	summary.Kind = brief.SummaryKind(kind)
	summary.CreatedAt, err = parseTime(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &summary, nil
}
