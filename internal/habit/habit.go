// Package habit implements habit lifecycle, check-in recording, the
// declaration and excuse gates, and the completion policy that every
// downstream view is built on.
package habit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/manav03panchal/habitual/internal/dates"
	"github.com/manav03panchal/habitual/internal/errors"
	"github.com/manav03panchal/habitual/internal/model"
	"github.com/manav03panchal/habitual/internal/schedule"
	"github.com/manav03panchal/habitual/internal/validate"
)

// NextID allocates the next sequential habit id (h0001, h0002, ...).
func NextID(s *model.Store) string {
	n := s.Meta.NextHabitNumber
	s.Meta.NextHabitNumber = n + 1
	return fmt.Sprintf("h%04d", n)
}

// Less orders habits by lower-cased name, then id. Every listing in the
// tool uses this ordering so output is stable across invocations.
func Less(a, b *model.Habit) bool {
	an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
	if an != bn {
		return an < bn
	}
	return a.ID < b.ID
}

// SortStable sorts habits in place by Less.
func SortStable(habits []model.Habit) {
	sort.SliceStable(habits, func(i, j int) bool {
		return Less(&habits[i], &habits[j])
	})
}

// List returns habits sorted by Less, excluding archived ones unless
// includeArchived is set.
func List(s *model.Store, includeArchived bool) []model.Habit {
	out := make([]model.Habit, 0, len(s.Habits))
	for _, h := range s.Habits {
		if includeArchived || !h.Archived {
			out = append(out, h)
		}
	}
	SortStable(out)
	return out
}

func isHabitID(s string) bool {
	if len(s) != 5 || s[0] != 'h' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Select resolves a selector to a habit index in s.Habits. A selector is
// either an exact habit id or a case-insensitive name prefix. A prefix
// matching more than one candidate is an AmbiguousError enumerating all
// of them.
func Select(s *model.Store, selector string, includeArchived bool) (int, error) {
	sel := strings.TrimSpace(selector)
	if sel == "" {
		return 0, errors.NewUsageError("Habit selector is required")
	}

	if isHabitID(sel) {
		for i := range s.Habits {
			if s.Habits[i].ID == sel {
				if !includeArchived && s.Habits[i].Archived {
					return 0, errors.NewNotFoundError(
						fmt.Sprintf("Habit not found: %s", selector), errors.ErrHabitNotFound)
				}
				return i, nil
			}
		}
		return 0, errors.NewNotFoundError(
			fmt.Sprintf("Habit not found: %s", selector), errors.ErrHabitNotFound)
	}

	prefix := strings.ToLower(sel)
	type match struct {
		idx int
		h   *model.Habit
	}
	var matches []match
	for i := range s.Habits {
		h := &s.Habits[i]
		if !includeArchived && h.Archived {
			continue
		}
		if strings.HasPrefix(strings.ToLower(h.Name), prefix) {
			matches = append(matches, match{idx: i, h: h})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return Less(matches[i].h, matches[j].h)
	})

	switch len(matches) {
	case 0:
		return 0, errors.NewNotFoundError(
			fmt.Sprintf("Habit not found: %s", selector), errors.ErrHabitNotFound)
	case 1:
		return matches[0].idx, nil
	default:
		candidates := make([]string, len(matches))
		for i, m := range matches {
			candidates[i] = fmt.Sprintf("%s %s", m.h.ID, m.h.Name)
		}
		return 0, errors.NewAmbiguousError(selector, candidates)
	}
}

// New validates the inputs and builds a habit record. The id must come
// from NextID; today becomes the creation date and schedule origin.
func New(id, name, schedulePattern string, period model.Period, target int,
	notes, today string, needsDeclaration bool, excuseQuota int) (model.Habit, error) {

	habitName, err := validate.HabitName(name)
	if err != nil {
		return model.Habit{}, err
	}

	sched, err := schedule.ParsePattern(schedulePattern)
	if err != nil {
		return model.Habit{}, err
	}
	if err := sched.Validate(); err != nil {
		return model.Habit{}, err
	}

	if !period.Valid() {
		return model.Habit{}, errors.NewUsageErrorf("Invalid period: %s", period)
	}
	if err := validate.Positive("target", target); err != nil {
		return model.Habit{}, err
	}
	if err := validate.NonNegative("excuse quota", excuseQuota); err != nil {
		return model.Habit{}, err
	}
	if err := dates.Validate(today, "today"); err != nil {
		return model.Habit{}, err
	}

	h := model.Habit{
		ID:               id,
		Name:             habitName,
		Schedule:         sched,
		Target:           model.Target{Period: period, Quantity: target},
		Notes:            strings.TrimSpace(notes),
		CreatedDate:      today,
		NeedsDeclaration: needsDeclaration,
	}
	h.SetExcuseQuota(excuseQuota)
	return h, nil
}

// IsScheduledOn reports whether the habit is scheduled on the date.
// Dates before the habit's creation date are never scheduled.
func IsScheduledOn(h *model.Habit, date string) (bool, error) {
	if date < h.CreatedDate {
		return false, nil
	}
	wd, err := dates.ISOWeekday(date)
	if err != nil {
		return false, err
	}
	return h.Schedule.Contains(wd), nil
}

// Archive marks the habit archived, stamping the archive date once.
func Archive(h *model.Habit, today string) {
	h.Archived = true
	if h.ArchivedDate == "" {
		h.ArchivedDate = today
	}
}

// Unarchive clears the archived state.
func Unarchive(h *model.Habit) {
	h.Archived = false
	h.ArchivedDate = ""
}
