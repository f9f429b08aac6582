package brief

import "time"

// Tuning holds the delays, attempt counts and thresholds of the pipeline.
// The defaults were tuned empirically against the rendering latency of the
// supported third-party pages.
type Tuning struct {
	// Delay before asking a source tab for text.
	VideoSourceDelay time.Duration `json:"videoSourceDelay"`
	PageSourceDelay  time.Duration `json:"pageSourceDelay"`

	// Wait between injecting a destination agent and delivering the prompt.
	DestinationSettle time.Duration `json:"destinationSettle"`

	VideoLoadTimeout  time.Duration `json:"videoLoadTimeout"`
	VideoLoadInterval time.Duration `json:"videoLoadInterval"`

	PanelResetSettle  time.Duration `json:"panelResetSettle"`
	PanelOpenDelay    time.Duration `json:"panelOpenDelay"`
	PanelOpenAttempts int           `json:"panelOpenAttempts"`
	PanelClickSettle  time.Duration `json:"panelClickSettle"`
	PanelRetryDelay   time.Duration `json:"panelRetryDelay"`
	TranscriptSettle  time.Duration `json:"transcriptSettle"`
	FallbackDelay     time.Duration `json:"fallbackDelay"`

	// Extracted text must be longer than this to be accepted.
	MinContentLength int `json:"minContentLength"`

	InputSettle      time.Duration `json:"inputSettle"`
	InputClearDelay  time.Duration `json:"inputClearDelay"`
	DeliveryCooldown time.Duration `json:"deliveryCooldown"`

	// How often a page agent checks for in-page navigation.
	NavigationPoll time.Duration `json:"navigationPoll"`
}

// DefaultTuning returns the production tuning.
func DefaultTuning() Tuning {
	return Tuning{
		VideoSourceDelay:  3 * time.Second,
		PageSourceDelay:   1 * time.Second,
		DestinationSettle: 2 * time.Second,
		VideoLoadTimeout:  10 * time.Second,
		VideoLoadInterval: 200 * time.Millisecond,
		PanelResetSettle:  1 * time.Second,
		PanelOpenDelay:    2 * time.Second,
		PanelOpenAttempts: 3,
		PanelClickSettle:  2 * time.Second,
		PanelRetryDelay:   1 * time.Second,
		TranscriptSettle:  3 * time.Second,
		FallbackDelay:     2 * time.Second,
		MinContentLength:  50,
		InputSettle:       2 * time.Second,
		InputClearDelay:   100 * time.Millisecond,
		DeliveryCooldown:  2 * time.Second,
		NavigationPoll:    500 * time.Millisecond,
	}
}

// SourceDelay returns the wait applied before extracting text from pageURL.
// Video pages get longer to let their client-side navigation settle.
func (t Tuning) SourceDelay(pageURL string) time.Duration {
	if IsVideoURL(pageURL) {
		return t.VideoSourceDelay
	}
	return t.PageSourceDelay
}
