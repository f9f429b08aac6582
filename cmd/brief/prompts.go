package main

import (
	"fmt"

	"github.com/fwojciec/brief"
)

// Run executes the prompts set command.
func (c *PromptsSetCmd) Run(deps *Dependencies) error {
	if c.Short == nil && c.Detailed == nil {
		err := brief.Errorf(brief.EINVALID, "use --short and/or --detailed to set a prompt")
		fmt.Fprintf(deps.Stderr, "error: %s\n", brief.ErrorMessage(err))
		return err
	}

	settings, err := deps.Settings.UpdateSettings(deps.Ctx, brief.SettingsUpdate{
		ShortPrompt:    c.Short,
		DetailedPrompt: c.Detailed,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", brief.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Prompts saved (custom: %s).\n", settings.PromptChanged)
	return nil
}

// Run executes the prompts reset command.
func (c *PromptsResetCmd) Run(deps *Dependencies) error {
	empty := ""
	if _, err := deps.Settings.UpdateSettings(deps.Ctx, brief.SettingsUpdate{
		ShortPrompt:    &empty,
		DetailedPrompt: &empty,
	}); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", brief.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "Prompts reset to defaults.")
	return nil
}

// Run executes the prompts show command.
func (c *PromptsShowCmd) Run(deps *Dependencies) error {
	settings, err := deps.Settings.FindSettings(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", brief.ErrorMessage(err))
		return err
	}

	for _, kind := range []brief.SummaryKind{brief.SummaryShort, brief.SummaryDetailed} {
		fmt.Fprintf(deps.Stdout, "%s: %s\n", kind, describePrompt(settings, kind))
	}
	return nil
}

func describePrompt(settings *brief.Settings, kind brief.SummaryKind) string {
	if !settings.PromptChanged.Includes(kind) {
		if kind == brief.SummaryShort {
			return fmt.Sprintf("%q (default)", brief.DefaultShortPrompt)
		}
		return fmt.Sprintf("%q (default)", brief.DefaultDetailedPrompt)
	}
	if kind == brief.SummaryShort {
		return fmt.Sprintf("%q", settings.ShortPrompt)
	}
	return fmt.Sprintf("%q", settings.DetailedPrompt)
}
