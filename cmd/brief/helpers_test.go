package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/brief"
	main "github.com/fwojciec/brief/cmd/brief"
)

// delivery is a fake send pipeline.
type delivery struct {
	RunFn      func(ctx context.Context, req brief.OpenAIRequest) (*brief.PipelineRun, error)
	DispatchFn func(ctx context.Context, req brief.OpenAIRequest)
}

func (d *delivery) Run(ctx context.Context, req brief.OpenAIRequest) (*brief.PipelineRun, error) {
	return d.RunFn(ctx, req)
}

func (d *delivery) Dispatch(ctx context.Context, req brief.OpenAIRequest) {
	d.DispatchFn(ctx, req)
}

// summaryRunner is a fake summarize pipeline.
type summaryRunner struct {
	SummarizeFn func(ctx context.Context, kind brief.SummaryKind) (*brief.Summary, error)
}

func (s *summaryRunner) Summarize(ctx context.Context, kind brief.SummaryKind) (*brief.Summary, error) {
	return s.SummarizeFn(ctx, kind)
}

// textExtractor is a fake document reader.
type textExtractor struct {
	ExtractTextFn func(ctx context.Context, doc brief.Document) string
}

func (e *textExtractor) ExtractText(ctx context.Context, doc brief.Document) string {
	return e.ExtractTextFn(ctx, doc)
}

// newDeps returns dependencies writing to fresh buffers.
func newDeps() (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, stdout, stderr
}

func ptr[T any](v T) *T {
	return &v
}
