package content

import (
	"context"

	"github.com/fwojciec/brief"
)

// Injector writes prompts into the chat input of an AI page.
type Injector struct {
	Tuning brief.Tuning
	Guard  *DeliveryGuard
}

// Insert puts prompt into the first visible chat input of doc and fires the
// events the page listens for. Deliveries to the same tab within the
// cooldown window are ignored without touching the page.
func (i *Injector) Insert(ctx context.Context, tabID string, doc brief.Document, prompt string) *brief.GoToAIResponse {
	if !i.Guard.Allow(tabID) {
		return failure(brief.EDUPLICATE, "Duplicate request ignored")
	}
	if prompt == "" {
		prompt = brief.DefaultGoToAIMsg
	}

	if err := Sleep(ctx, i.Tuning.InputSettle); err != nil {
		return failure(brief.EINTERNAL, err.Error())
	}

	input, err := findInput(ctx, doc)
	if err != nil {
		return failure(brief.EINTERNAL, err.Error())
	}
	if input == nil {
		return failure(brief.EINPUTNOTFOUND, "AI input not found")
	}

	if err := i.write(ctx, input, prompt); err != nil {
		return failure(brief.EINTERNAL, err.Error())
	}
	return &brief.GoToAIResponse{Success: true, Message: "Prompt inserted"}
}

func (i *Injector) write(ctx context.Context, input brief.Element, prompt string) error {
	if err := input.SetValue(ctx, ""); err != nil {
		return err
	}
	if err := Sleep(ctx, i.Tuning.InputClearDelay); err != nil {
		return err
	}
	if err := input.Focus(ctx); err != nil {
		return err
	}
	if err := input.SetValue(ctx, prompt); err != nil {
		return err
	}
	for _, typ := range inputEvents {
		if err := input.Dispatch(ctx, typ); err != nil {
			return err
		}
	}
	return nil
}

// findInput returns the first visible element matching the input
// selectors, or nil.
func findInput(ctx context.Context, doc brief.Document) (brief.Element, error) {
	for _, sel := range inputSelectors {
		elems, err := doc.QueryAll(ctx, sel)
		if err != nil {
			return nil, err
		}
		for _, el := range elems {
			visible, err := el.Visible(ctx)
			if err != nil {
				return nil, err
			}
			if visible {
				return el, nil
			}
		}
	}
	return nil, nil
}

func failure(code, message string) *brief.GoToAIResponse {
	return &brief.GoToAIResponse{Success: false, Message: message, Code: code}
}
