package brief

import "strings"

// SummaryKind selects how long a summary should be.
type SummaryKind string

const (
	SummaryShort    SummaryKind = "short"
	SummaryDetailed SummaryKind = "detailed"
)

// Validate returns an error if the kind is not a supported summary kind.
func (k SummaryKind) Validate() error {
	switch k {
	case SummaryShort, SummaryDetailed:
		return nil
	}
	return Errorf(EINVALID, "unknown summary type %q", string(k))
}

// AIKind identifies a destination AI chat site.
type AIKind string

const (
	AIChatGPT AIKind = "chatgpt"
	AIClaude  AIKind = "claude"
)

// Destinations maps each AI kind to the page a prompt is delivered to.
var Destinations = map[AIKind]string{
	AIChatGPT: "https://chatgpt.com/",
	AIClaude:  "https://claude.ai/",
}

// DestinationURL resolves an AI kind to its chat page URL.
// Returns EUNKNOWNDEST if the kind is not in Destinations.
func DestinationURL(kind AIKind) (string, error) {
	u, ok := Destinations[kind]
	if !ok {
		return "", Errorf(EUNKNOWNDEST, "unknown AI type %q", string(kind))
	}
	return u, nil
}

// PromptStatus records which summary kinds have a custom prompt.
type PromptStatus string

const (
	PromptNone     PromptStatus = "none"
	PromptShort    PromptStatus = "short"
	PromptDetailed PromptStatus = "detailed"
	PromptBoth     PromptStatus = "both"
)

// Includes reports whether the status marks kind as customized.
func (s PromptStatus) Includes(kind SummaryKind) bool {
	switch s {
	case PromptBoth:
		return kind == SummaryShort || kind == SummaryDetailed
	case PromptShort:
		return kind == SummaryShort
	case PromptDetailed:
		return kind == SummaryDetailed
	}
	return false
}

// PromptStatusFor derives the status from the stored custom prompts.
// Blank prompts do not count as customized.
func PromptStatusFor(shortPrompt, detailedPrompt string) PromptStatus {
	hasShort := strings.TrimSpace(shortPrompt) != ""
	hasDetailed := strings.TrimSpace(detailedPrompt) != ""
	switch {
	case hasShort && hasDetailed:
		return PromptBoth
	case hasDetailed:
		return PromptDetailed
	case hasShort:
		return PromptShort
	}
	return PromptNone
}
