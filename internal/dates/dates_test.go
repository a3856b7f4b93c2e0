package dates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(2026, 1, 31))
	assert.True(t, IsValid(2024, 2, 29)) // leap year
	assert.True(t, IsValid(2000, 2, 29)) // divisible by 400
	assert.False(t, IsValid(2026, 2, 29))
	assert.False(t, IsValid(1900, 2, 29)) // divisible by 100, not 400
	assert.False(t, IsValid(2026, 4, 31))
	assert.False(t, IsValid(2026, 13, 1))
	assert.False(t, IsValid(2026, 0, 1))
	assert.False(t, IsValid(2026, 1, 0))
}

func TestDaysFromCivilEpoch(t *testing.T) {
	assert.Equal(t, 0, DaysFromCivil(1970, 1, 1))
	assert.Equal(t, 1, DaysFromCivil(1970, 1, 2))
	assert.Equal(t, -1, DaysFromCivil(1969, 12, 31))
}

func TestCivilDaysRoundtrip(t *testing.T) {
	// Every day across several year boundaries and two leap days.
	start := DaysFromCivil(2023, 12, 1)
	end := DaysFromCivil(2026, 3, 1)
	for z := start; z <= end; z++ {
		c := CivilFromDays(z)
		require.Equal(t, z, DaysFromCivil(c.Year, c.Month, c.Day), "date %s", c)
		require.True(t, IsValid(c.Year, c.Month, c.Day), "date %s", c)
	}
}

func TestParse(t *testing.T) {
	c, err := Parse("2026-01-31", "date")
	require.NoError(t, err)
	assert.Equal(t, Civil{Year: 2026, Month: 1, Day: 31}, c)
	assert.Equal(t, "2026-01-31", c.String())

	for _, bad := range []string{"", "2026-1-31", "2026/01/31", "20260131",
		"2026-02-30", "2026-01-31x", "abcd-ef-gh"} {
		_, err := Parse(bad, "date")
		assert.Error(t, err, "input %q", bad)
	}
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2026-01-31", 1)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", got)

	got, err = AddDays("2026-03-01", -1)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-28", got)

	got, err = AddDays("2024-02-28", 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", got)

	got, err = AddDays("2026-01-15", -365)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-15", got)
}

func TestISOWeekday(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"1970-01-01", 4}, // Thursday
		{"2026-01-26", 1}, // Monday
		{"2026-01-31", 6}, // Saturday
		{"2026-02-01", 7}, // Sunday
		{"1969-12-28", 7}, // pre-epoch Sunday
	}
	for _, tt := range tests {
		wd, err := ISOWeekday(tt.date)
		require.NoError(t, err)
		assert.Equal(t, tt.want, wd, "date %s", tt.date)
	}
}

func TestWeekBounds(t *testing.T) {
	start, err := WeekStart("2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-26", start)

	end, err := WeekEnd("2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", end)

	// A Monday is its own week start.
	start, err = WeekStart("2026-01-26")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-26", start)
}

func TestWeekID(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2026-01-31", "2026-W05"},
		{"2026-01-01", "2026-W01"},
		{"2024-12-30", "2025-W01"}, // Monday belonging to next ISO year
		{"2021-01-01", "2020-W53"}, // Friday belonging to previous ISO year
	}
	for _, tt := range tests {
		id, err := WeekID(tt.date)
		require.NoError(t, err)
		assert.Equal(t, tt.want, id, "date %s", tt.date)
	}
}

func TestRange(t *testing.T) {
	days, err := RangeSlice("2026-01-30", "2026-02-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-30", "2026-01-31", "2026-02-01", "2026-02-02"}, days)

	days, err = RangeSlice("2026-01-30", "2026-01-30")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-30"}, days)

	_, err = Range("2026-02-01", "2026-01-01")
	assert.Error(t, err)
}

func TestRangeRestartable(t *testing.T) {
	seq, err := Range("2026-01-01", "2026-01-03")
	require.NoError(t, err)

	// Iterating twice yields the same days both times.
	for pass := 0; pass < 2; pass++ {
		var got []string
		for d := range seq {
			got = append(got, d)
		}
		assert.Equal(t, []string{"2026-01-01", "2026-01-02", "2026-01-03"}, got)
	}
}
