package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/habitual/internal/errors"
)

const today = "2026-01-31"

func TestParseDateExactPassthrough(t *testing.T) {
	got, err := ParseDate("2026-01-05", today)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-05", got)
}

func TestParseDateToday(t *testing.T) {
	for _, in := range []string{"", "  ", "today", "Today"} {
		got, err := ParseDate(in, today)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, today, got)
	}
}

func TestParseDateRejectsInvalidCalendarDate(t *testing.T) {
	for _, in := range []string{"2026-02-30", "2026-13-01", "2026-00-10"} {
		_, err := ParseDate(in, today)
		assert.True(t, errors.IsUsageError(err), "input %q", in)
	}
}

func TestParseDateRelative(t *testing.T) {
	got, err := ParseDate("yesterday", today)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-30", got)

	got, err = ParseDate("tomorrow", today)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", got)
}

func TestParseDateGibberish(t *testing.T) {
	_, err := ParseDate("not a date at all xyzzy", today)
	assert.True(t, errors.IsUsageError(err))
}
