package main_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/brief"
	main "github.com/fwojciec/brief/cmd/brief"
	"github.com/fwojciec/brief/goquery"
	"github.com/fwojciec/brief/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reads the active tab", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps()
		deps.Browser = &mock.Browser{
			ActiveTabFn: func(context.Context) (*brief.Tab, error) {
				return &brief.Tab{ID: "tab-1", URL: "https://example.com/"}, nil
			},
		}
		deps.Pages = &mock.PageHost{
			GetTextFn: func(_ context.Context, tabID string) (*brief.GetTextResponse, error) {
				assert.Equal(t, "tab-1", tabID)
				return &brief.GetTextResponse{Text: "Article body"}, nil
			},
		}

		err := (&main.ExtractCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "Article body\n", stdout.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("surfaces the page's failure text", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps()
		deps.Browser = &mock.Browser{
			ActiveTabFn: func(context.Context) (*brief.Tab, error) {
				return &brief.Tab{ID: "tab-1"}, nil
			},
		}
		deps.Pages = &mock.PageHost{
			GetTextFn: func(context.Context, string) (*brief.GetTextResponse, error) {
				return &brief.GetTextResponse{Error: brief.NoTextOnPage}, nil
			},
		}

		err := (&main.ExtractCmd{}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, brief.ENOTEXT, brief.ErrorCode(err))
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), brief.NoTextOnPage)
	})

	t.Run("reports an unreachable page", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps()
		deps.Browser = &mock.Browser{
			ActiveTabFn: func(context.Context) (*brief.Tab, error) {
				return &brief.Tab{ID: "tab-1"}, nil
			},
		}
		deps.Pages = &mock.PageHost{
			GetTextFn: func(context.Context, string) (*brief.GetTextResponse, error) {
				return nil, errors.New("target closed")
			},
		}

		err := (&main.ExtractCmd{}).Run(deps)

		assert.Equal(t, brief.ENOTEXT, brief.ErrorCode(err))
		assert.Equal(t, brief.PageUnreachable, brief.ErrorMessage(err))
	})

	t.Run("reads a snapshot and counts tokens", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps()
		deps.Snapshots = &mock.Snapshotter{
			SnapshotFn: func(_ context.Context, url string) (brief.Document, error) {
				assert.Equal(t, "https://example.com/post", url)
				return nil, nil
			},
		}
		deps.Extractor = &textExtractor{
			ExtractTextFn: func(context.Context, brief.Document) string {
				return "Snapshot body"
			},
		}
		deps.Tokens = &mock.TokenCounter{
			CountTokensFn: func(_ context.Context, text string) (int, error) {
				assert.Equal(t, "Snapshot body", text)
				return 3, nil
			},
		}

		err := (&main.ExtractCmd{URL: "https://example.com/post", Tokens: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "Snapshot body\n", stdout.String())
		assert.Equal(t, "3 tokens\n", stderr.String())
	})

	t.Run("prints snapshot errors", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Snapshots = &mock.Snapshotter{
			SnapshotFn: func(context.Context, string) (brief.Document, error) {
				return nil, brief.Errorf(brief.EHTTP, "HTTP error! status: 404")
			},
		}

		err := (&main.ExtractCmd{URL: "https://example.com/missing"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "HTTP error! status: 404")
	})

	t.Run("renders a snapshot as markdown", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Snapshots = &mock.Snapshotter{
			SnapshotFn: func(_ context.Context, url string) (brief.Document, error) {
				return goquery.NewDocument(url, `<html><body><h1>Title</h1></body></html>`)
			},
		}
		deps.Markdown = &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				assert.Contains(t, html, "<h1>Title</h1>")
				return "# Title", nil
			},
		}

		err := (&main.ExtractCmd{URL: "https://example.com/post", Markdown: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "# Title\n", stdout.String())
	})

	t.Run("markdown needs a url", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()

		err := (&main.ExtractCmd{Markdown: true}).Run(deps)

		assert.Equal(t, brief.EINVALID, brief.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--markdown needs --url")
	})
}
