package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/habitual/internal/habit"
	"github.com/manav03panchal/habitual/internal/model"
)

const ts = "2026-01-31T20:00:00Z"

func newHabit(t *testing.T, s *model.Store, name, pattern string,
	period model.Period, target int, created string, needsDecl bool) *model.Habit {
	t.Helper()
	h, err := habit.New(habit.NextID(s), name, pattern, period, target, "",
		created, needsDecl, model.DefaultExcuseQuota)
	require.NoError(t, err)
	s.Habits = append(s.Habits, h)
	return &s.Habits[len(s.Habits)-1]
}

func TestStreaks(t *testing.T) {
	tests := []struct {
		name    string
		ok      []bool
		current int
		longest int
	}{
		{"empty", nil, 0, 0},
		{"all_done", []bool{true, true, true}, 3, 3},
		{"none_done", []bool{false, false}, 0, 0},
		{"broken_tail", []bool{true, true, false}, 0, 2},
		{"current_shorter_than_longest", []bool{true, true, true, false, true}, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, longest := streaks(tt.ok)
			assert.Equal(t, tt.current, current)
			assert.Equal(t, tt.longest, longest)
		})
	}
}

func TestDailyStats(t *testing.T) {
	s := model.NewStore()
	h := newHabit(t, s, "Water", "everyday", model.PeriodDay, 8, "2026-01-01", false)

	// 10 successful days inside 2026-01-02 .. 2026-01-31.
	for _, d := range []string{
		"2026-01-02", "2026-01-03", "2026-01-04", "2026-01-05", "2026-01-06",
		"2026-01-10", "2026-01-15", "2026-01-29", "2026-01-30", "2026-01-31",
	} {
		require.NoError(t, habit.SetQuantity(s, h.ID, d, 8))
	}
	// A below-target day is not a success.
	require.NoError(t, habit.SetQuantity(s, h.ID, "2026-01-20", 5))

	rows, err := BuildStats(s, []model.Habit{*h}, "2026-01-02", "2026-01-31")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, 30, r.SuccessRate.Eligible)
	assert.Equal(t, 10, r.SuccessRate.Successes)
	require.NotNil(t, r.SuccessRate.Rate)
	assert.InDelta(t, 10.0/30.0, *r.SuccessRate.Rate, 1e-9)
	assert.Equal(t, 3, r.CurrentStreak) // Jan 29, 30, 31
	assert.Equal(t, 5, r.LongestStreak) // Jan 2 .. 6
}

func TestDailyStatsRespectsScheduleAndGate(t *testing.T) {
	s := model.NewStore()
	h := newHabit(t, s, "Gym", "mon,wed,fri", model.PeriodDay, 1, "2026-01-01", true)

	// Mon Jan 5: declared and done. Wed Jan 7: done but undeclared.
	require.NoError(t, habit.SetQuantity(s, h.ID, "2026-01-05", 1))
	_, err := habit.Declare(s, h.ID, "2026-01-05", ts, "gym day")
	require.NoError(t, err)
	require.NoError(t, habit.SetQuantity(s, h.ID, "2026-01-07", 1))

	// Week of Jan 5: three scheduled days (Mon, Wed, Fri).
	rows, err := BuildStats(s, []model.Habit{*h}, "2026-01-05", "2026-01-11")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].SuccessRate.Eligible)
	assert.Equal(t, 1, rows[0].SuccessRate.Successes)
}

func TestWeeklyStats(t *testing.T) {
	s := model.NewStore()
	h := newHabit(t, s, "Reading", "everyday", model.PeriodWeek, 5, "2026-01-01", false)

	// Five ISO weeks: 2025-12-29, 2026-01-05, 01-12, 01-19, 01-26.
	// Successes in the weeks of Jan 5 and Jan 19 only.
	require.NoError(t, habit.SetQuantity(s, h.ID, "2026-01-06", 5))
	require.NoError(t, habit.SetQuantity(s, h.ID, "2026-01-21", 3))
	require.NoError(t, habit.SetQuantity(s, h.ID, "2026-01-23", 2))
	require.NoError(t, habit.SetQuantity(s, h.ID, "2026-01-13", 4)) // short

	rows, err := BuildStats(s, []model.Habit{*h}, "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, 5, r.SuccessRate.Eligible)
	assert.Equal(t, 2, r.SuccessRate.Successes)
	assert.Equal(t, 0, r.CurrentStreak)
	assert.Equal(t, 1, r.LongestStreak)
}

func TestWeeklyStatsExcludesWeeksBeforeCreation(t *testing.T) {
	s := model.NewStore()
	// Created mid-January: the week of Jan 12 overlaps creation and counts.
	h := newHabit(t, s, "Reading", "everyday", model.PeriodWeek, 1, "2026-01-14", false)

	rows, err := BuildStats(s, []model.Habit{*h}, "2026-01-01", "2026-01-25")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	// Weeks of Dec 29 and Jan 5 end before creation; Jan 12 and Jan 19 remain.
	assert.Equal(t, 2, rows[0].SuccessRate.Eligible)
}

func TestSuccessRateNilWhenNoEligiblePeriods(t *testing.T) {
	s := model.NewStore()
	h := newHabit(t, s, "Gym", "mon", model.PeriodDay, 1, "2026-01-01", false)

	// Tue .. Thu window contains no Mondays.
	rows, err := BuildStats(s, []model.Habit{*h}, "2026-01-06", "2026-01-08")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].SuccessRate.Eligible)
	assert.Nil(t, rows[0].SuccessRate.Rate)
}

func TestBuildStatsOrdersByName(t *testing.T) {
	s := model.NewStore()
	z := newHabit(t, s, "zebra", "everyday", model.PeriodDay, 1, "2026-01-01", false)
	a := newHabit(t, s, "Apple", "everyday", model.PeriodDay, 1, "2026-01-01", false)

	rows, err := BuildStats(s, []model.Habit{*z, *a}, "2026-01-01", "2026-01-07")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Apple", rows[0].Name)
	assert.Equal(t, "zebra", rows[1].Name)
}

func TestDefaultStatsWindow(t *testing.T) {
	s := model.NewStore()
	day := newHabit(t, s, "Water", "everyday", model.PeriodDay, 8, "2026-01-01", false)
	week := newHabit(t, s, "Reading", "everyday", model.PeriodWeek, 5, "2026-01-01", false)

	w, err := DefaultStatsWindow(day, "2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, Window{From: "2026-01-02", To: "2026-01-31"}, w)

	// Week of 2026-01-31 starts Monday 2026-01-26; 12 weeks back is
	// 2025-11-10, ending Sunday 2026-02-01.
	w, err = DefaultStatsWindow(week, "2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, Window{From: "2025-11-10", To: "2026-02-01"}, w)
}
