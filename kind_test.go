package brief_test

import (
	"testing"

	"github.com/fwojciec/brief"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryKind_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, brief.SummaryShort.Validate())
	require.NoError(t, brief.SummaryDetailed.Validate())

	err := brief.SummaryKind("medium").Validate()
	require.Error(t, err)
	assert.Equal(t, brief.EINVALID, brief.ErrorCode(err))
}

func TestDestinationURL(t *testing.T) {
	t.Parallel()

	t.Run("resolves known kinds", func(t *testing.T) {
		t.Parallel()

		u, err := brief.DestinationURL(brief.AIChatGPT)
		require.NoError(t, err)
		assert.Equal(t, "https://chatgpt.com/", u)

		u, err = brief.DestinationURL(brief.AIClaude)
		require.NoError(t, err)
		assert.Equal(t, "https://claude.ai/", u)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		t.Parallel()

		_, err := brief.DestinationURL("bard")
		require.Error(t, err)
		assert.Equal(t, brief.EUNKNOWNDEST, brief.ErrorCode(err))
	})
}

func TestPromptStatus_Includes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status   brief.PromptStatus
		short    bool
		detailed bool
	}{
		{brief.PromptNone, false, false},
		{brief.PromptShort, true, false},
		{brief.PromptDetailed, false, true},
		{brief.PromptBoth, true, true},
		{"", false, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.short, tt.status.Includes(brief.SummaryShort), "status=%q kind=short", tt.status)
		assert.Equal(t, tt.detailed, tt.status.Includes(brief.SummaryDetailed), "status=%q kind=detailed", tt.status)
	}
}

func TestPromptStatusFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, brief.PromptNone, brief.PromptStatusFor("", ""))
	assert.Equal(t, brief.PromptNone, brief.PromptStatusFor("  ", "\n"))
	assert.Equal(t, brief.PromptShort, brief.PromptStatusFor("tl;dr", ""))
	assert.Equal(t, brief.PromptDetailed, brief.PromptStatusFor("", "explain"))
	assert.Equal(t, brief.PromptBoth, brief.PromptStatusFor("tl;dr", "explain"))
}
