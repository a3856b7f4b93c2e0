package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/manav03panchal/habitual/internal/errors"
	"github.com/manav03panchal/habitual/internal/habit"
	"github.com/manav03panchal/habitual/internal/model"
)

// Export is the portable snapshot payload: habits and check-ins only,
// raw quantities, no penalty state.
type Export struct {
	Version  int             `json:"version"`
	Habits   []model.Habit   `json:"habits"`
	Checkins []model.Checkin `json:"checkins"`
}

// BuildExport builds the export payload. Check-ins are filtered to the
// exported habits and the optional inclusive [from, to] range (empty
// bounds are open). Habits sort by id, check-ins by (date, habit_id) so
// repeated exports of the same store are identical.
func BuildExport(s *model.Store, from, to string, includeArchived bool) Export {
	habits := habit.List(s, includeArchived)
	sort.SliceStable(habits, func(i, j int) bool {
		return habits[i].ID < habits[j].ID
	})

	ids := make(map[string]bool, len(habits))
	for _, h := range habits {
		ids[h.ID] = true
	}
	checkins := habit.CheckinsInRange(s, from, to, ids)
	if checkins == nil {
		checkins = []model.Checkin{}
	}

	return Export{Version: s.Version, Habits: habits, Checkins: checkins}
}

// WriteCSV writes habits.csv and checkins.csv under dir, creating the
// directory if needed.
func WriteCSV(e Export, dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.NewIOErrorWithOp("export", fmt.Sprintf("cannot create directory %s", dir), err)
	}
	if err := writeHabitsCSV(e.Habits, filepath.Join(dir, "habits.csv")); err != nil {
		return err
	}
	return writeCheckinsCSV(e.Checkins, filepath.Join(dir, "checkins.csv"))
}

func writeCSVFile(path string, header []string, rows [][]string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return errors.NewIOErrorWithOp("export", fmt.Sprintf("cannot create %s", path), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return errors.NewIOErrorWithOp("export", fmt.Sprintf("cannot write %s", path), err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return errors.NewIOErrorWithOp("export", fmt.Sprintf("cannot write %s", path), err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.NewIOErrorWithOp("export", fmt.Sprintf("cannot write %s", path), err)
	}
	if err := f.Close(); err != nil {
		return errors.NewIOErrorWithOp("export", fmt.Sprintf("cannot close %s", path), err)
	}
	return nil
}

func writeHabitsCSV(habits []model.Habit, path string) error {
	header := []string{
		"id", "name", "schedule", "period", "target", "notes",
		"needs_declaration", "excuse_quota_per_week", "created_date", "archived", "archived_date",
	}
	rows := make([][]string, 0, len(habits))
	for _, h := range habits {
		rows = append(rows, []string{
			h.ID,
			h.Name,
			h.Schedule.String(),
			string(h.Target.Period),
			strconv.Itoa(h.Target.Quantity),
			h.Notes,
			strconv.FormatBool(h.NeedsDeclaration),
			strconv.Itoa(h.ExcuseQuota()),
			h.CreatedDate,
			strconv.FormatBool(h.Archived),
			h.ArchivedDate,
		})
	}
	return writeCSVFile(path, header, rows)
}

func writeCheckinsCSV(checkins []model.Checkin, path string) error {
	header := []string{"habit_id", "date", "quantity"}
	rows := make([][]string, 0, len(checkins))
	for _, c := range checkins {
		rows = append(rows, []string{c.HabitID, c.Date, strconv.Itoa(c.Quantity)})
	}
	return writeCSVFile(path, header, rows)
}
