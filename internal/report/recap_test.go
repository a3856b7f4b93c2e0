package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/habitual/internal/habit"
	"github.com/manav03panchal/habitual/internal/model"
)

func TestParseRecapRange(t *testing.T) {
	for _, in := range []string{"ytd", "Month", " WEEK "} {
		_, err := ParseRecapRange(in)
		assert.NoError(t, err, "input %q", in)
	}
	_, err := ParseRecapRange("quarter")
	assert.Error(t, err)
}

func TestRecapRangeDates(t *testing.T) {
	today := "2026-08-30"

	from, to, err := RecapYTD.Dates(today)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01", from)
	assert.Equal(t, today, to)

	from, to, err = RecapMonth.Dates(today)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-01", from)
	assert.Equal(t, today, to)

	from, to, err = RecapWeek.Dates(today)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-24", from)
	assert.Equal(t, today, to)
}

func TestBuildRecapPercentages(t *testing.T) {
	s := model.NewStore()
	h := newHabit(t, s, "Water", "everyday", model.PeriodDay, 8, "2026-01-01", false)

	// Week range ending 2026-01-31: Jan 25 .. Jan 31, all scheduled.
	for _, d := range []string{"2026-01-26", "2026-01-28", "2026-01-30"} {
		require.NoError(t, habit.SetQuantity(s, h.ID, d, 8))
	}

	rows, err := BuildRecap(s, []model.Habit{*h}, RecapWeek, "2026-01-31", false)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, 7, r.Eligible)
	assert.Equal(t, 3, r.Successes)
	require.NotNil(t, r.Percent)
	assert.Equal(t, 43, *r.Percent) // round(3/7*100)
	assert.Equal(t, "8/day", r.TargetLabel)
	assert.Equal(t, RecapRangeInfo{Kind: "week", From: "2026-01-25", To: "2026-01-31"}, r.Range)
}

func TestBuildRecapSortOrder(t *testing.T) {
	s := model.NewStore()
	low := newHabit(t, s, "Low", "everyday", model.PeriodDay, 1, "2026-01-01", false)
	high := newHabit(t, s, "High", "everyday", model.PeriodDay, 1, "2026-01-01", false)
	// Created after the range ends: zero eligible days, undefined percent.
	newHabit(t, s, "Future", "everyday", model.PeriodDay, 1, "2026-06-01", false)

	for _, d := range []string{"2026-01-25", "2026-01-26", "2026-01-27",
		"2026-01-28", "2026-01-29", "2026-01-30", "2026-01-31"} {
		require.NoError(t, habit.SetQuantity(s, high.ID, d, 1))
	}
	require.NoError(t, habit.SetQuantity(s, low.ID, "2026-01-25", 1))

	rows, err := BuildRecap(s, habit.List(s, false), RecapWeek, "2026-01-31", false)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Percent descending, undefined last.
	assert.Equal(t, "High", rows[0].Name)
	assert.Equal(t, "Low", rows[1].Name)
	assert.Equal(t, "Future", rows[2].Name)
	assert.Nil(t, rows[2].Percent)

	// Behind-first flips to ascending; undefined stays last.
	rows, err = BuildRecap(s, habit.List(s, false), RecapWeek, "2026-01-31", true)
	require.NoError(t, err)
	assert.Equal(t, "Low", rows[0].Name)
	assert.Equal(t, "High", rows[1].Name)
	assert.Equal(t, "Future", rows[2].Name)
}

func TestBuildRecapTiesByName(t *testing.T) {
	s := model.NewStore()
	b := newHabit(t, s, "banana", "everyday", model.PeriodDay, 1, "2026-01-01", false)
	a := newHabit(t, s, "Apple", "everyday", model.PeriodDay, 1, "2026-01-01", false)

	require.NoError(t, habit.SetQuantity(s, a.ID, "2026-01-31", 1))
	require.NoError(t, habit.SetQuantity(s, b.ID, "2026-01-31", 1))

	rows, err := BuildRecap(s, habit.List(s, false), RecapWeek, "2026-01-31", false)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Apple", rows[0].Name)
	assert.Equal(t, "banana", rows[1].Name)
}

func TestBuildRecapWeeklyHabit(t *testing.T) {
	s := model.NewStore()
	h := newHabit(t, s, "Reading", "everyday", model.PeriodWeek, 5, "2026-01-01", false)

	// Month range 2026-01-02 .. 2026-01-31 spans weeks of Dec 29 through
	// Jan 26 (5 weeks); one success in the week of Jan 5.
	require.NoError(t, habit.SetQuantity(s, h.ID, "2026-01-06", 5))

	rows, err := BuildRecap(s, []model.Habit{*h}, RecapMonth, "2026-01-31", false)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].Eligible)
	assert.Equal(t, 1, rows[0].Successes)
	assert.Equal(t, "5/week", rows[0].TargetLabel)
	assert.Equal(t, 20, *rows[0].Percent)
}
