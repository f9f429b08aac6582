package main

import (
	"fmt"

	"github.com/fwojciec/brief"
)

// Run executes the last command.
func (c *LastCmd) Run(deps *Dependencies) error {
	summary, err := deps.Summaries.LastSummary(deps.Ctx)
	if brief.ErrorCode(err) == brief.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "No summary yet. Use 'brief summarize' to create one.\n")
		if c.CopySafe {
			return brief.Errorf(brief.ENOTFOUND, "%s", brief.NothingToCopy)
		}
		return nil
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", brief.ErrorMessage(err))
		return err
	}

	if c.CopySafe && brief.IsPlaceholder(summary.Text) {
		fmt.Fprintf(deps.Stderr, "error: %s\n", brief.NothingToCopy)
		return brief.Errorf(brief.EINVALID, "%s", brief.NothingToCopy)
	}

	fmt.Fprintln(deps.Stdout, summary.Text)
	return nil
}
