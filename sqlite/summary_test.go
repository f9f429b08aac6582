package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/brief"
	"github.com/fwojciec/brief/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryService_CreateSummary(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID and timestamp", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSummaryService(setupTestDB(t))
		summary := &brief.Summary{
			SourceURL: "https://example.com/post",
			Kind:      brief.SummaryShort,
			Text:      "A short summary.",
		}

		err := svc.CreateSummary(context.Background(), summary)

		require.NoError(t, err)
		assert.NotEmpty(t, summary.ID)
		assert.False(t, summary.CreatedAt.IsZero())
	})

	t.Run("rejects an unknown kind", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSummaryService(setupTestDB(t))

		err := svc.CreateSummary(context.Background(), &brief.Summary{Kind: "medium", Text: "x"})

		require.Error(t, err)
		assert.Equal(t, brief.EINVALID, brief.ErrorCode(err))
	})

	t.Run("rejects empty text", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSummaryService(setupTestDB(t))

		err := svc.CreateSummary(context.Background(), &brief.Summary{Kind: brief.SummaryShort})

		require.Error(t, err)
		assert.Equal(t, brief.EINVALID, brief.ErrorCode(err))
	})
}

func TestSummaryService_LastSummary(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND when nothing is stored", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSummaryService(setupTestDB(t))

		_, err := svc.LastSummary(context.Background())

		require.Error(t, err)
		assert.Equal(t, brief.ENOTFOUND, brief.ErrorCode(err))
	})

	t.Run("returns the most recent summary", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSummaryService(setupTestDB(t))
		ctx := context.Background()

		for _, text := range []string{"first", "second", "third"} {
			require.NoError(t, svc.CreateSummary(ctx, &brief.Summary{
				SourceURL: "https://example.com/" + text,
				Kind:      brief.SummaryDetailed,
				Text:      text,
			}))
		}

		last, err := svc.LastSummary(ctx)

		require.NoError(t, err)
		assert.Equal(t, "third", last.Text)
		assert.Equal(t, "https://example.com/third", last.SourceURL)
		assert.Equal(t, brief.SummaryDetailed, last.Kind)
		assert.False(t, last.CreatedAt.IsZero())
	})

	t.Run("round-trips stored fields", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSummaryService(setupTestDB(t))
		ctx := context.Background()
		created := &brief.Summary{Kind: brief.SummaryShort, Text: "Only one."}
		require.NoError(t, svc.CreateSummary(ctx, created))

		last, err := svc.LastSummary(ctx)

		require.NoError(t, err)
		assert.Equal(t, created.ID, last.ID)
		assert.True(t, created.CreatedAt.Equal(last.CreatedAt))
	})
}

func TestSummaryService_FindSummary(t *testing.T) {
	t.Parallel()

	t.Run("matches hash and kind", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSummaryService(setupTestDB(t))
		ctx := context.Background()
		for _, s := range []*brief.Summary{
			{Kind: brief.SummaryShort, Text: "short of a", SourceHash: "aaaa"},
			{Kind: brief.SummaryDetailed, Text: "detailed of a", SourceHash: "aaaa"},
			{Kind: brief.SummaryShort, Text: "short of b", SourceHash: "bbbb"},
		} {
			require.NoError(t, svc.CreateSummary(ctx, s))
		}

		found, err := svc.FindSummary(ctx, "aaaa", brief.SummaryDetailed)

		require.NoError(t, err)
		assert.Equal(t, "detailed of a", found.Text)
		assert.Equal(t, "aaaa", found.SourceHash)
	})

	t.Run("returns ENOTFOUND for unseen text", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSummaryService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.CreateSummary(ctx, &brief.Summary{Kind: brief.SummaryShort, Text: "x", SourceHash: "aaaa"}))

		_, err := svc.FindSummary(ctx, "cccc", brief.SummaryShort)

		assert.Equal(t, brief.ENOTFOUND, brief.ErrorCode(err))
	})

	t.Run("requires a hash", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSummaryService(setupTestDB(t))

		_, err := svc.FindSummary(context.Background(), "", brief.SummaryShort)

		assert.Equal(t, brief.EINVALID, brief.ErrorCode(err))
	})
}
