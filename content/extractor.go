package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/brief"
)

// Extractor produces the readable text of a page.
type Extractor struct {
	Tuning      brief.Tuning
	Transcripts *Transcripts
}

// ExtractText returns the text of doc: the transcript or description on
// video pages, otherwise the article or paragraph text. It never fails;
// failures are described in the returned text.
func (e *Extractor) ExtractText(ctx context.Context, doc brief.Document) string {
	loc, err := doc.Location(ctx)
	if err == nil && brief.IsVideoURL(loc) {
		return e.extractVideo(ctx, doc, brief.VideoID(loc))
	}
	return e.extractPage(ctx, doc)
}

func (e *Extractor) extractVideo(ctx context.Context, doc brief.Document, videoID string) string {
	text, err := e.Transcripts.Acquire(ctx, doc, videoID)
	if err == nil {
		return text
	}

	for _, sel := range descriptionSelectors {
		el, qerr := doc.Query(ctx, sel)
		if qerr != nil || el == nil {
			continue
		}
		desc, qerr := el.TextContent(ctx)
		if qerr != nil {
			continue
		}
		desc = strings.TrimSpace(desc)
		if longEnough(desc, e.Tuning.MinContentLength) {
			return "Video Description: " + desc
		}
	}

	return fmt.Sprintf("Unable to get YouTube transcript: %s. Please ensure captions are available for this video.", reason(err))
}

func (e *Extractor) extractPage(ctx context.Context, doc brief.Document) string {
	if article, err := doc.Query(ctx, "article"); err == nil && article != nil {
		if text, err := article.InnerText(ctx); err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
	}

	paragraphs, err := doc.QueryAll(ctx, "p")
	if err != nil {
		return brief.NoReadableText
	}
	texts := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		text, err := p.InnerText(ctx)
		if err != nil {
			continue
		}
		texts = append(texts, text)
	}
	if text := strings.TrimSpace(strings.Join(texts, "\n")); text != "" {
		return text
	}
	return brief.NoReadableText
}

// reason returns the user-facing message of err.
func reason(err error) string {
	if brief.ErrorCode(err) == brief.EINTERNAL {
		return err.Error()
	}
	return brief.ErrorMessage(err)
}
