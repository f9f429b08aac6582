package content_test

import (
	"testing"
	"time"

	"github.com/fwojciec/brief"
	"github.com/fwojciec/brief/goquery"
	"github.com/stretchr/testify/require"
)

// testTuning returns a tuning without delays and with a short content
// threshold, so small fixtures count as real content.
func testTuning() brief.Tuning {
	return brief.Tuning{
		VideoLoadTimeout:  50 * time.Millisecond,
		VideoLoadInterval: 5 * time.Millisecond,
		PanelOpenAttempts: 3,
		MinContentLength:  5,
		DeliveryCooldown:  2 * time.Second,
	}
}

const watchURL = "https://www.youtube.com/watch?v=abc123"

// videoPage is a loaded watch page with a transcript toggle. extra is
// appended to the body.
const videoPage = `<html><body>
<video></video>
<h1 class="ytd-watch-metadata"><yt-formatted-string>A video</yt-formatted-string></h1>
<button id="toggle" aria-label="Show transcript">Show transcript</button>
<div id="panels"></div>
%s
</body></html>`

// segmentsPanel renders a transcript panel holding the given segments.
func segmentsPanel(segments ...string) string {
	html := `<ytd-transcript-renderer><ytd-transcript-body-renderer>`
	for _, s := range segments {
		html += `<ytd-transcript-segment-renderer><div class="segment-timestamp"></div><yt-formatted-string class="segment-text">` + s + `</yt-formatted-string></ytd-transcript-segment-renderer>`
	}
	return html + `</ytd-transcript-body-renderer></ytd-transcript-renderer>`
}

// newDoc parses a fixture page.
func newDoc(t *testing.T, location, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocument(location, html)
	require.NoError(t, err)
	return doc
}

// openPanelOnClick makes the transcript toggle render panel.
func openPanelOnClick(t *testing.T, doc *goquery.Document, panel string) {
	t.Helper()
	require.NoError(t, doc.OnClick("#toggle", func(d *goquery.Document) {
		_ = d.Append("#panels", panel)
	}))
}

func eventTypes(doc *goquery.Document) []string {
	var types []string
	for _, e := range doc.Events() {
		types = append(types, e.Type)
	}
	return types
}

func clickedTargets(doc *goquery.Document) []string {
	var targets []string
	for _, e := range doc.Events() {
		if e.Type == "click" {
			targets = append(targets, e.Target)
		}
	}
	return targets
}
