package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/brief"
	"github.com/fwojciec/brief/mock"
	briefslog "github.com/fwojciec/brief/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingSettingsService(t *testing.T) {
	t.Parallel()

	t.Run("find logs whether a key is set", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.SettingsService{
			FindSettingsFn: func(ctx context.Context) (*brief.Settings, error) {
				return &brief.Settings{APIKey: "top-secret"}, nil
			},
		}

		svc := briefslog.NewLoggingSettingsService(inner, debugLogger(&buf))
		settings, err := svc.FindSettings(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "top-secret", settings.APIKey)
		output := buf.String()
		assert.Contains(t, output, `msg="find settings"`)
		assert.Contains(t, output, "has_key=true")
		assert.NotContains(t, output, "top-secret")
	})

	t.Run("find is silent at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.SettingsService{
			FindSettingsFn: func(ctx context.Context) (*brief.Settings, error) {
				return &brief.Settings{}, nil
			},
		}

		svc := briefslog.NewLoggingSettingsService(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		_, err := svc.FindSettings(context.Background())

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})

	t.Run("update logs changed fields", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.SettingsService{
			UpdateSettingsFn: func(ctx context.Context, upd brief.SettingsUpdate) (*brief.Settings, error) {
				return &brief.Settings{ShortPrompt: *upd.ShortPrompt, PromptChanged: brief.PromptShort}, nil
			},
		}

		short := "Be brief"
		svc := briefslog.NewLoggingSettingsService(inner, debugLogger(&buf))
		_, err := svc.UpdateSettings(context.Background(), brief.SettingsUpdate{ShortPrompt: &short})

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, `msg="update settings"`)
		assert.Contains(t, output, "api_key=false")
		assert.Contains(t, output, "short_prompt=true")
		assert.Contains(t, output, "detailed_prompt=false")
		assert.Contains(t, output, "prompt_changed=short")
	})
}

func TestLoggingSummaryService(t *testing.T) {
	t.Parallel()

	t.Run("create logs the assigned ID", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.SummaryService{
			CreateSummaryFn: func(ctx context.Context, summary *brief.Summary) error {
				summary.ID = "sum-1"
				return nil
			},
		}

		svc := briefslog.NewLoggingSummaryService(inner, debugLogger(&buf))
		err := svc.CreateSummary(context.Background(), &brief.Summary{
			SourceURL: "https://example.com/a",
			Kind:      brief.SummaryDetailed,
			Text:      "A summary.",
		})

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, `msg="create summary"`)
		assert.Contains(t, output, "id=sum-1")
		assert.Contains(t, output, "kind=detailed")
		assert.Contains(t, output, "url=https://example.com/a")
	})

	t.Run("last logs not found", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.SummaryService{
			LastSummaryFn: func(ctx context.Context) (*brief.Summary, error) {
				return nil, brief.Errorf(brief.ENOTFOUND, "no summary stored")
			},
		}

		svc := briefslog.NewLoggingSummaryService(inner, debugLogger(&buf))
		_, err := svc.LastSummary(context.Background())

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, `msg="last summary"`)
		assert.Contains(t, output, "code=not_found")
	})
	t.Run("find logs whether the lookup hit", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.SummaryService{
			FindSummaryFn: func(ctx context.Context, sourceHash string, kind brief.SummaryKind) (*brief.Summary, error) {
				return &brief.Summary{ID: "sum-2", SourceHash: sourceHash, Kind: kind}, nil
			},
		}

		svc := briefslog.NewLoggingSummaryService(inner, debugLogger(&buf))
		summary, err := svc.FindSummary(context.Background(), "00ff", brief.SummaryShort)

		require.NoError(t, err)
		assert.Equal(t, "sum-2", summary.ID)
		output := buf.String()
		assert.Contains(t, output, `msg="find summary"`)
		assert.Contains(t, output, "source_hash=00ff")
		assert.Contains(t, output, "kind=short")
		assert.Contains(t, output, "hit=true")
	})
}
