package content

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	timestampPattern  = regexp.MustCompile(`\d{1,2}:\d{2}`)
	panelLabelPattern = regexp.MustCompile(`(?i)Show transcript|Hide transcript|Transcript`)
)

// StripTimestamps removes m:ss and mm:ss substrings and collapses whitespace.
func StripTimestamps(s string) string {
	return collapseSpace(timestampPattern.ReplaceAllString(s, ""))
}

// CleanCaptions turns transcript segment texts into one line of prose.
// Timestamps are stripped, empty segments dropped, and a segment equal to
// the one before it is dropped.
func CleanCaptions(segments []string) string {
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		c := StripTimestamps(seg)
		if c == "" {
			continue
		}
		if len(out) > 0 && out[len(out)-1] == c {
			continue
		}
		out = append(out, c)
	}
	return strings.Join(out, " ")
}

// CleanPanelText cleans the whole text of a transcript panel: timestamps
// and the panel's own labels are removed.
func CleanPanelText(s string) string {
	s = StripTimestamps(s)
	s = panelLabelPattern.ReplaceAllString(s, "")
	return collapseSpace(s)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// longEnough reports whether s has more than n characters.
func longEnough(s string, n int) bool {
	return utf8.RuneCountInString(s) > n
}
