package runtime

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manav03panchal/habitual/internal/errors"
)

func TestGetSuggestion(t *testing.T) {
	err := errors.NewNotFoundError("habit not found: gym", errors.ErrHabitNotFound)
	assert.Equal(t, Suggestions[errors.ErrHabitNotFound], GetSuggestion(err))

	// A usage error's own suggestion wins.
	ue := &errors.UsageError{Message: "bad date", Suggestion: "Use YYYY-MM-DD"}
	assert.Equal(t, "Use YYYY-MM-DD", GetSuggestion(ue))

	assert.Empty(t, GetSuggestion(fmt.Errorf("plain")))
}

func TestFormatErrorWithSuggestion(t *testing.T) {
	err := errors.NewIOError("store is locked", errors.ErrStoreLocked)
	out := FormatError(err)
	assert.True(t, strings.HasPrefix(out, "store is locked\n"))
	assert.Contains(t, out, "stale .lock file")
}

func TestFormatErrorListsCandidates(t *testing.T) {
	err := errors.NewAmbiguousError("wa", []string{"h0001 Water", "h0002 Walking"})
	out := FormatError(err)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "  h0001 Water", lines[1])
	assert.Equal(t, "  h0002 Walking", lines[2])
}

func TestFormatErrorPlain(t *testing.T) {
	assert.Equal(t, "boom", FormatError(fmt.Errorf("boom")))
}
