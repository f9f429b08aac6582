package brief

// Default prompt prefixes used when a summary kind has no custom prompt.
const (
	DefaultShortPrompt    = "summarise this text shortly :"
	DefaultDetailedPrompt = "summarise this text in detail :"
)

// BuildPrompt assembles the prompt delivered to an AI chat page.
// The custom prompt for kind is used iff settings.PromptChanged includes
// kind; otherwise the fixed default template applies.
func BuildPrompt(kind SummaryKind, settings *Settings, text string) string {
	if settings != nil && settings.PromptChanged.Includes(kind) {
		custom := settings.ShortPrompt
		if kind == SummaryDetailed {
			custom = settings.DetailedPrompt
		}
		return custom + ":\n\n" + text
	}
	if kind == SummaryShort {
		return DefaultShortPrompt + "\n\n" + text
	}
	return DefaultDetailedPrompt + "\n\n" + text
}

// SummaryPrompt builds the prompt sent to the Summarizer.
// Unknown kinds get the detailed prompt.
func SummaryPrompt(kind SummaryKind, text string) string {
	if kind == SummaryShort {
		return "Summarize the following text in a few sentences:\n\n" + text
	}
	return "Provide a detailed summary of the following text:\n\n" + text
}
