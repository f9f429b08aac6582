package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/brief"
)

// Run executes the key set command.
func (c *KeySetCmd) Run(deps *Dependencies) error {
	key := strings.TrimSpace(c.Key)
	if key == "" {
		err := brief.Errorf(brief.EINVALID, "API key must not be empty")
		fmt.Fprintf(deps.Stderr, "error: %s\n", brief.ErrorMessage(err))
		return err
	}

	if _, err := deps.Settings.UpdateSettings(deps.Ctx, brief.SettingsUpdate{APIKey: &key}); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", brief.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "API key saved.")
	return nil
}
