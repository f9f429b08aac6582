// Package htmltomarkdown renders snapshot pages as Markdown for pasting
// into chat prompts by hand.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/brief"
)

// Ensure Converter implements brief.Converter at compile time.
var _ brief.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown with CommonMark and table support.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{conv: converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)}
}

// Convert returns the Markdown form of html with surrounding blank lines
// trimmed.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", brief.Errorf(brief.EINVALID, "empty HTML input")
	}

	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", brief.Errorf(brief.EINTERNAL, "converting to markdown: %v", err)
	}
	return strings.TrimSpace(md), nil
}
