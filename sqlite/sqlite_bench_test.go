package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/brief"
	"github.com/fwojciec/brief/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkSummaryInserts compares summary writes between WAL and rollback
// journal modes.
func BenchmarkSummaryInserts(b *testing.B) {
	b.Run("rollback_journal", func(b *testing.B) {
		benchmarkSummaryInserts(b, "DELETE")
	})

	b.Run("wal_mode", func(b *testing.B) {
		benchmarkSummaryInserts(b, "WAL")
	})
}

func benchmarkSummaryInserts(b *testing.B, journalMode string) {
	b.Helper()

	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	ctx := context.Background()
	_, err := db.ExecContext(ctx, "PRAGMA journal_mode = "+journalMode)
	require.NoError(b, err)

	svc := sqlite.NewSummaryService(db)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		summary := &brief.Summary{
			SourceURL: fmt.Sprintf("https://example.com/articles/%d", i),
			Kind:      brief.SummaryShort,
			Text:      fmt.Sprintf("Summary %d. Lorem ipsum dolor sit amet, consectetur adipiscing elit.", i),
		}
		if err := svc.CreateSummary(ctx, summary); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkLastSummary measures the lookup the popup performs on open.
func BenchmarkLastSummary(b *testing.B) {
	const stored = 1000

	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	ctx := context.Background()
	svc := sqlite.NewSummaryService(db)
	for i := 0; i < stored; i++ {
		require.NoError(b, svc.CreateSummary(ctx, &brief.Summary{
			Kind: brief.SummaryDetailed,
			Text: fmt.Sprintf("Summary %d", i),
		}))
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := svc.LastSummary(ctx); err != nil {
			b.Fatal(err)
		}
	}
}
