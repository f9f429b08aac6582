package rod_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/brief"
	"github.com/fwojciec/brief/mock"
	"github.com/fwojciec/brief/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingBrowser(t *testing.T) {
	t.Parallel()

	t.Run("logs opened tab", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Browser{
			OpenTabFn: func(ctx context.Context, url string) (*brief.Tab, error) {
				return &brief.Tab{ID: "T1", URL: url}, nil
			},
		}

		b := rod.NewLoggingBrowser(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		tab, err := b.OpenTab(context.Background(), "https://claude.ai/")

		require.NoError(t, err)
		assert.Equal(t, "T1", tab.ID)
		output := buf.String()
		assert.Contains(t, output, `msg="open tab"`)
		assert.Contains(t, output, "url=https://claude.ai/")
		assert.Contains(t, output, "tab=T1")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs active tab error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Browser{
			ActiveTabFn: func(ctx context.Context) (*brief.Tab, error) {
				return nil, errors.New("cdp gone")
			},
		}

		b := rod.NewLoggingBrowser(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		_, err := b.ActiveTab(context.Background())

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, `msg="active tab"`)
		assert.Contains(t, output, `err="cdp gone"`)
	})

	t.Run("delegates subscribe and close", func(t *testing.T) {
		t.Parallel()

		updates := make(chan brief.TabUpdate)
		closed := false
		inner := &mock.Browser{
			SubscribeFn: func(ctx context.Context) (<-chan brief.TabUpdate, func()) {
				return updates, func() {}
			},
			CloseFn: func() error {
				closed = true
				return nil
			},
		}

		b := rod.NewLoggingBrowser(inner, slog.New(slog.DiscardHandler))
		ch, unsubscribe := b.Subscribe(context.Background())
		unsubscribe()

		assert.Equal(t, (<-chan brief.TabUpdate)(updates), ch)
		require.NoError(t, b.Close())
		assert.True(t, closed)
	})
}
