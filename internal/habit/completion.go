package habit

import (
	"github.com/manav03panchal/habitual/internal/dates"
	"github.com/manav03panchal/habitual/internal/model"
)

// IsDeclared reports whether the declaration gate is satisfied for
// (habit, date). Habits without the gate are always considered declared.
func IsDeclared(s *model.Store, h *model.Habit, date string) bool {
	if !h.NeedsDeclaration {
		return true
	}
	return HasDeclaration(s, h.ID, date)
}

// CountedQuantity is the quantity that counts toward completion: the raw
// check-in quantity, forced to 0 when the habit is declaration-gated and
// no declaration exists for the date.
func CountedQuantity(s *model.Store, h *model.Habit, date string) int {
	raw := Quantity(s, h.ID, date)
	if h.NeedsDeclaration && !HasDeclaration(s, h.ID, date) {
		return 0
	}
	return raw
}

// IsDoneOnDay reports day-period completion for the date: the declaration
// gate must be satisfied and the counted quantity must meet the target.
// A declared-but-unmet day is not done.
func IsDoneOnDay(s *model.Store, h *model.Habit, date string) bool {
	return IsDeclared(s, h, date) && CountedQuantity(s, h, date) >= h.Target.Quantity
}

// WeekSums returns the raw and counted quantity sums for the ISO week
// starting at weekStart. Days before the habit's creation date are
// excluded.
func WeekSums(s *model.Store, h *model.Habit, weekStart string) (raw, counted int, err error) {
	weekEnd, err := dates.WeekEnd(weekStart)
	if err != nil {
		return 0, 0, err
	}
	days, err := dates.Range(weekStart, weekEnd)
	if err != nil {
		return 0, 0, err
	}
	for d := range days {
		if d < h.CreatedDate {
			continue
		}
		raw += Quantity(s, h.ID, d)
		counted += CountedQuantity(s, h, d)
	}
	return raw, counted, nil
}

// IsDoneInWeek reports week-period completion for the ISO week starting
// at weekStart: the counted sum across the week meets the target.
func IsDoneInWeek(s *model.Store, h *model.Habit, weekStart string) (bool, error) {
	_, counted, err := WeekSums(s, h, weekStart)
	if err != nil {
		return false, err
	}
	return counted >= h.Target.Quantity, nil
}
