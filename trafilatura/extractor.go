// Package trafilatura strips boilerplate from fetched pages before their
// text is extracted.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/brief"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements brief.ReadableExtractor at compile time.
var _ brief.ReadableExtractor = (*Extractor)(nil)

// Extractor finds the main content of news, blog and reference pages.
type Extractor struct {
	comments bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithComments keeps reader comments in the extracted content.
func WithComments() Option {
	return func(e *Extractor) {
		e.comments = true
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the title and main content of rawHTML.
// Returns EINVALID for empty input and ENOCONTENT if no main content is found.
func (e *Extractor) Extract(rawHTML string) (*brief.Readable, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, brief.Errorf(brief.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: !e.comments,
	})
	if err != nil {
		return nil, brief.Errorf(brief.ENOCONTENT, "no readable content: %v", err)
	}
	if result.ContentNode == nil {
		return nil, brief.Errorf(brief.ENOCONTENT, "no readable content")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return nil, err
	}

	return &brief.Readable{
		Title:       result.Metadata.Title,
		ContentHTML: buf.String(),
	}, nil
}
