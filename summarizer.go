package brief

import "context"

// Summarizer turns extracted page text into a summary.
type Summarizer interface {
	// Summarize returns a summary of text of the given kind.
	// Returns EMISSINGCREDENTIAL if apiKey is empty and EHTTP if the
	// backing service answers with a non-success status.
	Summarize(ctx context.Context, text string, kind SummaryKind, apiKey string) (string, error)
}
