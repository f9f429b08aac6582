package main

import (
	"fmt"

	"github.com/fwojciec/brief"
)

// Run executes the summarize command.
func (c *SummarizeCmd) Run(deps *Dependencies) error {
	summary, err := deps.Summary.Summarize(deps.Ctx, brief.SummaryKind(c.Type))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", brief.ErrorMessage(err))
		if brief.ErrorCode(err) == brief.EMISSINGCREDENTIAL {
			fmt.Fprintln(deps.Stderr, keyHint)
		}
		return err
	}

	fmt.Fprintln(deps.Stdout, summary.Text)
	return nil
}

const keyHint = "Hint: Run 'brief key set <key>' to store a Gemini API key. Get one at https://aistudio.google.com/apikey"
