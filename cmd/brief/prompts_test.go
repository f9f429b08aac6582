package main_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fwojciec/brief"
	main "github.com/fwojciec/brief/cmd/brief"
	"github.com/fwojciec/brief/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptsSetCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("updates only the given prompt", func(t *testing.T) {
		t.Parallel()

		var got brief.SettingsUpdate
		deps, stdout, _ := newDeps()
		deps.Settings = &mock.SettingsService{
			UpdateSettingsFn: func(_ context.Context, upd brief.SettingsUpdate) (*brief.Settings, error) {
				got = upd
				return &brief.Settings{ShortPrompt: *upd.ShortPrompt, PromptChanged: brief.PromptShort}, nil
			},
		}

		err := (&main.PromptsSetCmd{Short: ptr("Two lines only.")}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, got.ShortPrompt)
		assert.Equal(t, "Two lines only.", *got.ShortPrompt)
		assert.Nil(t, got.DetailedPrompt)
		assert.Nil(t, got.APIKey)
		assert.Equal(t, "Prompts saved (custom: short).\n", stdout.String())
	})

	t.Run("requires at least one prompt", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()

		err := (&main.PromptsSetCmd{}).Run(deps)

		assert.Equal(t, brief.EINVALID, brief.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--short and/or --detailed")
	})
}

func TestPromptsResetCmd_Run(t *testing.T) {
	t.Parallel()

	var got brief.SettingsUpdate
	deps, stdout, _ := newDeps()
	deps.Settings = &mock.SettingsService{
		UpdateSettingsFn: func(_ context.Context, upd brief.SettingsUpdate) (*brief.Settings, error) {
			got = upd
			return &brief.Settings{PromptChanged: brief.PromptNone}, nil
		},
	}

	err := (&main.PromptsResetCmd{}).Run(deps)

	require.NoError(t, err)
	require.NotNil(t, got.ShortPrompt)
	require.NotNil(t, got.DetailedPrompt)
	assert.Empty(t, *got.ShortPrompt)
	assert.Empty(t, *got.DetailedPrompt)
	assert.Nil(t, got.APIKey)
	assert.Equal(t, "Prompts reset to defaults.\n", stdout.String())
}

func TestPromptsShowCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newDeps()
	deps.Settings = &mock.SettingsService{
		FindSettingsFn: func(context.Context) (*brief.Settings, error) {
			return &brief.Settings{
				DetailedPrompt: "Cover every section.",
				PromptChanged:  brief.PromptDetailed,
			}, nil
		},
	}

	err := (&main.PromptsShowCmd{}).Run(deps)

	require.NoError(t, err)
	out := stdout.String()
	assert.Contains(t, out, fmt.Sprintf("short: %q (default)\n", brief.DefaultShortPrompt))
	assert.Contains(t, out, "detailed: \"Cover every section.\"\n")
}
