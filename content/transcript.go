package content

import (
	"context"
	"errors"
	"strings"

	"github.com/fwojciec/brief"
)

// Transcripts acquires the caption transcript of a video page by driving
// the page's own transcript panel and scraping the rendered segments.
type Transcripts struct {
	Tuning  brief.Tuning
	Session *TranscriptSession
}

// NewTranscripts returns a Transcripts bound to session.
func NewTranscripts(tuning brief.Tuning, session *TranscriptSession) *Transcripts {
	return &Transcripts{Tuning: tuning, Session: session}
}

// Acquire returns the cleaned transcript of videoID from doc.
//
// Returns EINPROGRESS if another acquisition holds the session,
// EVIDEONOTLOADED if the video never finished loading, EPANELUNAVAILABLE if
// the transcript panel could not be opened, EVIDEOCHANGED if the page
// navigated away meanwhile, and ENOCONTENT if no usable text was found.
func (t *Transcripts) Acquire(ctx context.Context, doc brief.Document, videoID string) (string, error) {
	release, err := t.Session.Begin()
	if err != nil {
		return "", err
	}
	defer release()

	if videoID == "" {
		return "", brief.Errorf(brief.EVIDEONOTLOADED, "No video ID found in URL")
	}

	if !t.Session.Confirmed(videoID) {
		if err := t.waitForVideo(ctx, doc, videoID); err != nil {
			return "", err
		}
		t.Session.Confirm(videoID)
	}

	if err := t.resetPanel(ctx, doc); err != nil {
		return "", err
	}

	opened, err := t.openPanel(ctx, doc)
	if err != nil {
		return "", err
	}
	if !opened {
		return "", brief.Errorf(brief.EPANELUNAVAILABLE, "Could not open transcript panel - transcripts may not be available")
	}

	if err := Sleep(ctx, t.Tuning.TranscriptSettle); err != nil {
		return "", err
	}
	current, err := currentVideoID(ctx, doc)
	if err != nil {
		return "", err
	}
	if current != videoID {
		return "", brief.Errorf(brief.EVIDEOCHANGED, "Video changed during transcript extraction")
	}

	text, err := t.scrapeSegments(ctx, doc)
	if err != nil {
		return "", err
	}
	if text != "" {
		return text, nil
	}

	if err := Sleep(ctx, t.Tuning.FallbackDelay); err != nil {
		return "", err
	}
	text, err = t.scrapePanel(ctx, doc)
	if err != nil {
		return "", err
	}
	if text != "" {
		return text, nil
	}
	return "", brief.Errorf(brief.ENOCONTENT, "No valid transcript content found")
}

// waitForVideo polls until the page shows videoID with its player and
// title rendered.
func (t *Transcripts) waitForVideo(ctx context.Context, doc brief.Document, videoID string) error {
	err := Poll(ctx, t.Tuning.VideoLoadInterval, t.Tuning.VideoLoadTimeout, func(ctx context.Context) (bool, error) {
		current, err := currentVideoID(ctx, doc)
		if err != nil || current != videoID {
			return false, err
		}
		video, err := doc.Query(ctx, videoSelector)
		if err != nil || video == nil {
			return false, err
		}
		title, err := doc.Query(ctx, videoTitleSelector)
		if err != nil || title == nil {
			return false, err
		}
		text, err := title.TextContent(ctx)
		if err != nil {
			return false, err
		}
		return strings.TrimSpace(text) != "", nil
	})
	if errors.Is(err, ErrPollTimeout) {
		return brief.Errorf(brief.EVIDEONOTLOADED, "Video %s not loaded within %s", videoID, t.Tuning.VideoLoadTimeout)
	}
	return err
}

// resetPanel removes any transcript panel left over from a previous video
// so the next one is rendered fresh.
func (t *Transcripts) resetPanel(ctx context.Context, doc brief.Document) error {
	stale, err := doc.QueryAll(ctx, stalePanelSelector)
	if err != nil {
		return err
	}
	for _, el := range stale {
		if err := el.Remove(ctx); err != nil {
			return err
		}
	}

	buttons, err := doc.QueryAll(ctx, panelCloseSelector)
	if err != nil {
		return err
	}
	for _, btn := range buttons {
		inPanel, err := btn.Closest(ctx, panelScopeSelector)
		if err != nil {
			return err
		}
		if !inPanel {
			continue
		}
		if err := btn.Click(ctx); err != nil {
			return err
		}
	}

	if err := Sleep(ctx, t.Tuning.PanelResetSettle); err != nil {
		return err
	}
	return Sleep(ctx, t.Tuning.PanelOpenDelay)
}

// openPanel clicks inactive transcript toggles until a panel appears.
func (t *Transcripts) openPanel(ctx context.Context, doc brief.Document) (bool, error) {
	for attempt := 0; attempt < t.Tuning.PanelOpenAttempts; attempt++ {
		buttons, err := doc.QueryAll(ctx, panelToggleSelector)
		if err != nil {
			return false, err
		}
		for _, btn := range buttons {
			active, err := toggleActive(ctx, btn)
			if err != nil {
				return false, err
			}
			if active {
				continue
			}
			if err := btn.Click(ctx); err != nil {
				return false, err
			}
			if err := Sleep(ctx, t.Tuning.PanelClickSettle); err != nil {
				return false, err
			}
			panel, err := doc.Query(ctx, panelSelector)
			if err != nil {
				return false, err
			}
			if panel != nil {
				return true, nil
			}
		}
		if err := Sleep(ctx, t.Tuning.PanelRetryDelay); err != nil {
			return false, err
		}
	}
	return false, nil
}

// scrapeSegments reads individual caption segments, trying each segment
// selector in turn. Returns "" if no selector yields enough text.
func (t *Transcripts) scrapeSegments(ctx context.Context, doc brief.Document) (string, error) {
	for _, sel := range segmentSelectors {
		elems, err := doc.QueryAll(ctx, sel)
		if err != nil {
			return "", err
		}
		if len(elems) == 0 {
			continue
		}
		segments := make([]string, 0, len(elems))
		for _, el := range elems {
			text, err := el.TextContent(ctx)
			if err != nil {
				return "", err
			}
			segments = append(segments, text)
		}
		if text := CleanCaptions(segments); longEnough(text, t.Tuning.MinContentLength) {
			return text, nil
		}
	}
	return "", nil
}

// scrapePanel reads the whole text of the transcript panel.
func (t *Transcripts) scrapePanel(ctx context.Context, doc brief.Document) (string, error) {
	for _, sel := range panelContainerSelectors {
		el, err := doc.Query(ctx, sel)
		if err != nil {
			return "", err
		}
		if el == nil {
			continue
		}
		raw, err := el.TextContent(ctx)
		if err != nil {
			return "", err
		}
		if text := CleanPanelText(raw); longEnough(text, t.Tuning.MinContentLength) {
			return text, nil
		}
	}
	return "", nil
}

func toggleActive(ctx context.Context, btn brief.Element) (bool, error) {
	pressed, ok, err := btn.Attribute(ctx, "aria-pressed")
	if err != nil {
		return false, err
	}
	if ok && pressed == "true" {
		return true, nil
	}
	return btn.HasClass(ctx, activeToggleClass)
}

func currentVideoID(ctx context.Context, doc brief.Document) (string, error) {
	loc, err := doc.Location(ctx)
	if err != nil {
		return "", err
	}
	return brief.VideoID(loc), nil
}
