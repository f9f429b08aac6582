package main

import (
	"fmt"

	"github.com/fwojciec/brief"
)

// Run executes the send command.
func (c *SendCmd) Run(deps *Dependencies) error {
	run, err := deps.Delivery.Run(deps.Ctx, brief.OpenAIRequest{
		Action:      brief.ActionOpenAI,
		SummaryType: brief.SummaryKind(c.Type),
		AIType:      brief.AIKind(c.AI),
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", brief.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Sent %d characters to %s (tab %s)\n",
		len([]rune(run.PromptText)), run.AIKind, run.DestinationTabID)
	return nil
}
