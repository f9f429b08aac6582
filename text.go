package brief

import "strings"

// Placeholder texts produced instead of real content.
const (
	NoReadableText   = "No readable text found on this page."
	NoSummary        = "No summary generated."
	MissingAPIKey    = "API key is missing."
	NoTextOnPage     = "No text found on the page."
	SummaryFailed    = "Error generating summary."
	PageUnreachable  = "Could not connect to page. Please refresh and try again."
	NothingToCopy    = "No valid text to copy."
	SummaryPromptUI  = "Select a type and summarise"
	DefaultGoToAIMsg = "No text found"
)

var placeholders = []string{
	NoTextOnPage,
	NoSummary,
	SummaryFailed,
	MissingAPIKey,
	PageUnreachable,
	NothingToCopy,
	SummaryPromptUI,
}

// IsPlaceholder reports whether text is empty or one of the status messages
// shown in place of a summary. Such text is not worth copying or storing.
func IsPlaceholder(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return true
	}
	for _, p := range placeholders {
		if text == p {
			return true
		}
	}
	return false
}
