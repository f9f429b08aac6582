package brief

import "time"

// ExtractionRequest is one request for a tab's text.
type ExtractionRequest struct {
	ID          string    `json:"id"`
	SourceTabID string    `json:"sourceTabId"`
	RequestedAt time.Time `json:"requestedAt"`
}

// PipelineRun tracks one delivery of page text to an AI chat page, from
// trigger to prompt insertion.
type PipelineRun struct {
	ID               string            `json:"id"`
	Extraction       ExtractionRequest `json:"extraction"`
	DestinationTabID string            `json:"destinationTabId"`
	AIKind           AIKind            `json:"aiKind"`
	SummaryKind      SummaryKind       `json:"summaryKind"`
	PromptText       string            `json:"promptText"`
	DeliveredAt      *time.Time        `json:"deliveredAt,omitempty"`
}

// Delivered reports whether the prompt reached the destination page.
func (r *PipelineRun) Delivered() bool {
	return r.DeliveredAt != nil
}
