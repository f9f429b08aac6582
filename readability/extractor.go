// Package readability strips boilerplate from fetched pages with the
// Readability.js algorithm. It is the alternative to trafilatura for
// pages trafilatura cuts too aggressively.
package readability

import (
	"strings"

	"github.com/fwojciec/brief"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements brief.ReadableExtractor at compile time.
var _ brief.ReadableExtractor = (*Extractor)(nil)

// Extractor wraps go-readability.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the title and main content of rawHTML.
// Returns EINVALID for empty input and ENOCONTENT if no main content is found.
func (e *Extractor) Extract(rawHTML string) (*brief.Readable, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, brief.Errorf(brief.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, brief.Errorf(brief.ENOCONTENT, "no readable content: %v", err)
	}
	if strings.TrimSpace(article.TextContent) == "" {
		return nil, brief.Errorf(brief.ENOCONTENT, "no readable content")
	}

	return &brief.Readable{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
