package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/habitual/internal/habit"
	"github.com/manav03panchal/habitual/internal/model"
)

func TestBuildExportFiltersAndSorts(t *testing.T) {
	s := model.NewStore()
	water := newHabit(t, s, "Water", "everyday", model.PeriodDay, 8, "2026-01-01", false)
	gym := newHabit(t, s, "Gym", "everyday", model.PeriodDay, 1, "2026-01-01", false)
	old := newHabit(t, s, "Old", "everyday", model.PeriodDay, 1, "2026-01-01", false)
	habit.Archive(old, "2026-01-03")

	require.NoError(t, habit.SetQuantity(s, gym.ID, "2026-01-05", 1))
	require.NoError(t, habit.SetQuantity(s, water.ID, "2026-01-05", 8))
	require.NoError(t, habit.SetQuantity(s, water.ID, "2026-01-02", 4))
	require.NoError(t, habit.SetQuantity(s, old.ID, "2026-01-02", 1))

	e := BuildExport(s, "", "", false)
	assert.Equal(t, s.Version, e.Version)

	// Habits by id; the archived one is excluded along with its check-ins.
	require.Len(t, e.Habits, 2)
	assert.Equal(t, water.ID, e.Habits[0].ID)
	assert.Equal(t, gym.ID, e.Habits[1].ID)

	require.Len(t, e.Checkins, 3)
	assert.Equal(t, water.ID, e.Checkins[0].HabitID)
	assert.Equal(t, "2026-01-02", e.Checkins[0].Date)
	assert.Equal(t, water.ID, e.Checkins[1].HabitID)
	assert.Equal(t, "2026-01-05", e.Checkins[1].Date)
	assert.Equal(t, gym.ID, e.Checkins[2].HabitID)

	// Date bounds are inclusive.
	e = BuildExport(s, "2026-01-03", "2026-01-05", false)
	require.Len(t, e.Checkins, 2)
	for _, c := range e.Checkins {
		assert.Equal(t, "2026-01-05", c.Date)
	}

	// Archived habits come back with includeArchived.
	e = BuildExport(s, "", "", true)
	assert.Len(t, e.Habits, 3)
	assert.Len(t, e.Checkins, 4)
}

func TestBuildExportEmptyStore(t *testing.T) {
	s := model.NewStore()
	e := BuildExport(s, "", "", false)
	assert.NotNil(t, e.Habits)
	assert.NotNil(t, e.Checkins)
	assert.Empty(t, e.Habits)
	assert.Empty(t, e.Checkins)
}

func TestWriteCSV(t *testing.T) {
	s := model.NewStore()
	water := newHabit(t, s, "Water", "everyday", model.PeriodDay, 8, "2026-01-01", false)
	require.NoError(t, habit.SetQuantity(s, water.ID, "2026-01-05", 8))

	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, WriteCSV(BuildExport(s, "", "", false), dir))

	habits := readCSV(t, filepath.Join(dir, "habits.csv"))
	require.Len(t, habits, 2)
	assert.Equal(t, "id", habits[0][0])
	assert.Equal(t, water.ID, habits[1][0])
	assert.Equal(t, "Water", habits[1][1])
	assert.Equal(t, "everyday", habits[1][2])
	assert.Equal(t, "day", habits[1][3])
	assert.Equal(t, "8", habits[1][4])

	checkins := readCSV(t, filepath.Join(dir, "checkins.csv"))
	require.Len(t, checkins, 2)
	assert.Equal(t, []string{"habit_id", "date", "quantity"}, checkins[0])
	assert.Equal(t, []string{water.ID, "2026-01-05", "8"}, checkins[1])
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}
