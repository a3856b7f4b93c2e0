package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, ExitUsage, ExitCode(NewUsageError("bad input")))
	assert.Equal(t, ExitNotFound, ExitCode(NewNotFoundError("no such habit", ErrHabitNotFound)))
	assert.Equal(t, ExitAmbiguous, ExitCode(NewAmbiguousError("wa", []string{"h0001 Water"})))
	assert.Equal(t, ExitIO, ExitCode(NewIOError("store IO error", nil)))
	assert.Equal(t, 1, ExitCode(fmt.Errorf("something else")))
}

func TestExitCodeSeesThroughWrapping(t *testing.T) {
	err := Wrap(NewUsageError("bad input"), "while adding")
	assert.Equal(t, ExitUsage, ExitCode(err))
	assert.True(t, IsUsageError(err))
}

func TestIOErrorMessages(t *testing.T) {
	assert.Equal(t, "store IO error", NewIOError("store IO error", nil).Error())
	assert.Equal(t, "store IO error during rename",
		NewIOErrorWithOp("rename", "store IO error", nil).Error())
}

func TestSentinelUnwrapping(t *testing.T) {
	err := NewIOError("store is locked", ErrStoreLocked)
	assert.True(t, Is(err, ErrStoreLocked))
	assert.False(t, Is(err, ErrStoreCorrupted))

	nf := NewNotFoundError("penalty debt not found: pd_x", ErrDebtNotFound)
	assert.True(t, Is(nf, ErrDebtNotFound))
}

func TestAmbiguousErrorMessage(t *testing.T) {
	err := NewAmbiguousError("wa", []string{"h0001 Water", "h0002 Walking"})
	assert.Equal(t,
		"Ambiguous selector 'wa'. Candidates: h0001 Water, h0002 Walking",
		err.Error())
}

func TestAsHelpers(t *testing.T) {
	ue := &UsageError{Message: "bad date", Suggestion: "Use YYYY-MM-DD"}
	got, ok := AsUsageError(Wrap(ue, "context"))
	require.True(t, ok)
	assert.Equal(t, "Use YYYY-MM-DD", got.Suggestion)

	_, ok = AsUsageError(fmt.Errorf("plain"))
	assert.False(t, ok)

	ae, ok := AsAmbiguousError(NewAmbiguousError("g", []string{"h0001 Gym"}))
	require.True(t, ok)
	assert.Equal(t, []string{"h0001 Gym"}, ae.Candidates)
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "context"))
}
