package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePatternPresets(t *testing.T) {
	tests := []struct {
		pattern string
		days    []int
	}{
		{"everyday", []int{1, 2, 3, 4, 5, 6, 7}},
		{"weekdays", []int{1, 2, 3, 4, 5}},
		{"weekends", []int{6, 7}},
		{"  Everyday ", []int{1, 2, 3, 4, 5, 6, 7}},
	}
	for _, tt := range tests {
		s, err := ParsePattern(tt.pattern)
		require.NoError(t, err, "pattern %q", tt.pattern)
		assert.Equal(t, "days_of_week", s.Kind)
		assert.Equal(t, tt.days, s.Days)
	}
}

func TestParsePatternDayLists(t *testing.T) {
	s, err := ParsePattern("wed,mon,fri")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5}, s.Days)

	// Duplicates collapse.
	s, err = ParsePattern("mon,MON,Mon")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, s.Days)

	// Trailing comma is tolerated.
	s, err = ParsePattern("mon,")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, s.Days)

	for _, bad := range []string{"", "monday", "mon;wed", ",", "xyz"} {
		_, err := ParsePattern(bad)
		assert.Error(t, err, "pattern %q", bad)
	}
}

func TestStringCanonical(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"everyday", "everyday"},
		{"mon,tue,wed,thu,fri,sat,sun", "everyday"},
		{"fri,mon,tue,wed,thu", "weekdays"},
		{"sun,sat", "weekends"},
		{"wed,mon", "mon,wed"},
	}
	for _, tt := range tests {
		s, err := ParsePattern(tt.pattern)
		require.NoError(t, err)
		assert.Equal(t, tt.want, s.String(), "pattern %q", tt.pattern)
	}
}

func TestStringParseRoundtrip(t *testing.T) {
	for _, pattern := range []string{"everyday", "weekdays", "weekends", "mon,wed,fri"} {
		s, err := ParsePattern(pattern)
		require.NoError(t, err)
		again, err := ParsePattern(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, again)
	}
}

func TestValidate(t *testing.T) {
	s, _ := ParsePattern("mon,wed")
	assert.NoError(t, s.Validate())

	assert.Error(t, Schedule{Kind: "days_of_week"}.Validate())
	assert.Error(t, Schedule{Kind: "cron", Days: []int{1}}.Validate())
	assert.Error(t, Schedule{Kind: "days_of_week", Days: []int{0}}.Validate())
	assert.Error(t, Schedule{Kind: "days_of_week", Days: []int{8}}.Validate())
}

func TestContains(t *testing.T) {
	s, _ := ParsePattern("weekends")
	assert.True(t, s.Contains(6))
	assert.True(t, s.Contains(7))
	assert.False(t, s.Contains(1))
}
