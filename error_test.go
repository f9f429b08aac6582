package brief_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/brief"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := brief.Errorf(brief.EUNKNOWNDEST, "unknown AI type %q", "bard")

	assert.Equal(t, brief.EUNKNOWNDEST, brief.ErrorCode(err))
	assert.Equal(t, "unknown AI type \"bard\"", brief.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, brief.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, brief.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("delivering prompt: %w", brief.Errorf(brief.EDUPLICATE, "Duplicate request ignored"))

	assert.Equal(t, brief.EDUPLICATE, brief.ErrorCode(err))
	assert.Equal(t, "Duplicate request ignored", brief.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk on fire")

	assert.Equal(t, brief.EINTERNAL, brief.ErrorCode(err))
	assert.Equal(t, "Internal error.", brief.ErrorMessage(err))
}

func TestIsBenign(t *testing.T) {
	t.Parallel()

	assert.True(t, brief.IsBenign(brief.Errorf(brief.EDUPLICATE, "dup")))
	assert.True(t, brief.IsBenign(brief.Errorf(brief.EINPROGRESS, "busy")))
	assert.False(t, brief.IsBenign(brief.Errorf(brief.ENOTEXT, "empty")))
	assert.False(t, brief.IsBenign(nil))
}
