package content

// Selector lists are ordered from the current markup of the target pages to
// older or more generic fallbacks.
var (
	// Video page readiness.
	videoSelector      = "video"
	videoTitleSelector = "h1.ytd-watch-metadata yt-formatted-string"

	// Transcript panel elements removed before reopening the panel.
	stalePanelSelector = `[role="dialog"] ytd-transcript-renderer, ytd-engagement-panel-section-list-renderer[target-id="engagement-panel-transcript"]`

	panelCloseSelector  = `button[aria-label*="Close transcript" i], button[aria-label*="close" i]`
	panelScopeSelector  = `[target-id="engagement-panel-transcript"]`
	panelToggleSelector = `button[aria-label*="transcript" i]`
	panelSelector       = `ytd-transcript-renderer, [target-id="engagement-panel-transcript"]`

	// Class marking a toggle button that is already pressed.
	activeToggleClass = "style-default-active"

	segmentSelectors = []string{
		"ytd-transcript-segment-renderer .segment-text",
		".ytd-transcript-segment-renderer",
		"ytd-transcript-body-renderer .segment",
		`[data-params*="transcript"] .segment`,
	}

	panelContainerSelectors = []string{
		"ytd-transcript-renderer",
		`[target-id="engagement-panel-transcript"]`,
		".ytd-transcript-body-renderer",
	}

	descriptionSelectors = []string{
		"#description-text",
		"#meta-contents #description",
		"ytd-watch-metadata #description",
		".ytd-video-secondary-info-renderer #description",
	}

	// Chat inputs of the destination pages.
	inputSelectors = []string{
		`textarea[placeholder*="Ask"]`,
		`div[contenteditable="true"]`,
		`textarea[data-id="root"]`,
		"#prompt-textarea",
		`textarea[placeholder*="Message"]`,
	}

	// Events that make reactive chat inputs notice a programmatic write.
	inputEvents = []string{"input", "change", "keyup"}
)
