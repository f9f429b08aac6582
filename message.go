package brief

import "context"

// Message names of the cross-context protocol.
const (
	ActionGetText = "GET_TEXT"
	ActionOpenAI  = "openAI"
	ActionGoToAI  = "GO_TO_AI"
)

// GetTextRequest asks a page context for its readable text.
type GetTextRequest struct {
	Type string `json:"type"`
}

// GetTextResponse carries either the extracted text or an error message.
type GetTextResponse struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// OpenAIRequest asks the coordinator to deliver the active tab's text to an
// AI chat page.
type OpenAIRequest struct {
	Action      string      `json:"action"`
	SummaryType SummaryKind `json:"summaryType"`
	AIType      AIKind      `json:"aiType"`
}

// GoToAIRequest asks a destination page context to insert a prompt.
type GoToAIRequest struct {
	Action string `json:"action"`
	Prompt string `json:"prompt"`
}

// GoToAIResponse reports the outcome of a prompt insertion.
type GoToAIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`

	// Code is the error code for unsuccessful outcomes.
	Code string `json:"code,omitempty"`
}

// Err converts an unsuccessful response into an application error.
// Returns nil on success.
func (r *GoToAIResponse) Err() error {
	if r == nil {
		return Errorf(EINTERNAL, "no response from page")
	}
	if r.Success {
		return nil
	}
	code := r.Code
	if code == "" {
		code = EINTERNAL
	}
	return Errorf(code, "%s", r.Message)
}

// PageHost runs page agents inside browser tabs and routes messages to them.
// Each tab has at most one agent; agents share no state except the
// host-wide delivery guard.
type PageHost interface {
	// Inject starts a page agent for the tab if none is running.
	Inject(ctx context.Context, tabID string) error

	// Reset stops the tab's agent, if any, and clears its delivery history.
	Reset(ctx context.Context, tabID string) error

	// GetText sends GET_TEXT to the tab's agent, injecting one if needed.
	GetText(ctx context.Context, tabID string) (*GetTextResponse, error)

	// GoToAI sends GO_TO_AI to the tab's agent.
	// Returns ENOTFOUND if no agent has been injected into the tab.
	GoToAI(ctx context.Context, tabID string, req *GoToAIRequest) (*GoToAIResponse, error)
}
