package report

import (
	"github.com/manav03panchal/habitual/internal/dates"
	"github.com/manav03panchal/habitual/internal/habit"
	"github.com/manav03panchal/habitual/internal/model"
)

// Status is the combined today/week view.
type Status struct {
	Today TodaySection `json:"today"`
	Week  WeekSection  `json:"week"`
}

// TodaySection lists every habit scheduled on the date with its counted
// progress.
type TodaySection struct {
	Date   string          `json:"date"`
	Habits []TodayHabitRow `json:"habits"`
}

// TodayHabitRow is one habit's progress for the date. Quantity is the
// counted quantity; RawQuantity may differ when the habit is
// declaration-gated.
type TodayHabitRow struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Period           model.Period `json:"period"`
	Target           int          `json:"target"`
	Quantity         int          `json:"quantity"`
	RawQuantity      int          `json:"raw_quantity"`
	Done             bool         `json:"done"`
	NeedsDeclaration bool         `json:"needs_declaration"`
	Declared         bool         `json:"declared"`
}

// WeekSection summarizes the selected ISO week.
type WeekSection struct {
	ID        string         `json:"id"`
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`
	Habits    []WeekHabitRow `json:"habits"`
}

// WeekHabitRow is a per-habit week summary. Day-period habits report
// scheduled/done day counts; week-period habits report the week's sums.
type WeekHabitRow struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Period           model.Period `json:"period"`
	NeedsDeclaration bool         `json:"needs_declaration"`

	// Day-period fields.
	ScheduledDays     *int `json:"scheduled_days,omitempty"`
	DoneScheduledDays *int `json:"done_scheduled_days,omitempty"`

	// Week-period fields.
	Target      *int `json:"target,omitempty"`
	Quantity    *int `json:"quantity,omitempty"`
	RawQuantity *int `json:"raw_quantity,omitempty"`
}

// BuildStatus builds the today/week view for a date. weekOf selects a
// different ISO week than the one containing date; empty means the
// week of date.
func BuildStatus(s *model.Store, date, weekOf string, includeArchived bool) (Status, error) {
	anchor := date
	if weekOf != "" {
		anchor = weekOf
	}
	weekStart, err := dates.WeekStart(anchor)
	if err != nil {
		return Status{}, err
	}
	weekEnd, err := dates.WeekEnd(weekStart)
	if err != nil {
		return Status{}, err
	}
	weekID, err := dates.WeekID(weekStart)
	if err != nil {
		return Status{}, err
	}

	habits := habit.List(s, includeArchived)

	todayWeekStart, err := dates.WeekStart(date)
	if err != nil {
		return Status{}, err
	}

	var todayRows []TodayHabitRow
	for i := range habits {
		h := &habits[i]
		scheduled, err := habit.IsScheduledOn(h, date)
		if err != nil {
			return Status{}, err
		}
		if !scheduled {
			continue
		}

		if h.Target.Period == model.PeriodDay {
			todayRows = append(todayRows, TodayHabitRow{
				ID:               h.ID,
				Name:             h.Name,
				Period:           model.PeriodDay,
				Target:           h.Target.Quantity,
				Quantity:         habit.CountedQuantity(s, h, date),
				RawQuantity:      habit.Quantity(s, h.ID, date),
				Done:             habit.IsDoneOnDay(s, h, date),
				NeedsDeclaration: h.NeedsDeclaration,
				Declared:         habit.IsDeclared(s, h, date),
			})
		} else {
			raw, counted, err := habit.WeekSums(s, h, todayWeekStart)
			if err != nil {
				return Status{}, err
			}
			todayRows = append(todayRows, TodayHabitRow{
				ID:               h.ID,
				Name:             h.Name,
				Period:           model.PeriodWeek,
				Target:           h.Target.Quantity,
				Quantity:         counted,
				RawQuantity:      raw,
				Done:             counted >= h.Target.Quantity,
				NeedsDeclaration: h.NeedsDeclaration,
				Declared:         habit.IsDeclared(s, h, date),
			})
		}
	}

	weekDays, err := dates.RangeSlice(weekStart, weekEnd)
	if err != nil {
		return Status{}, err
	}

	var weekRows []WeekHabitRow
	for i := range habits {
		h := &habits[i]
		if h.Target.Period == model.PeriodDay {
			scheduled, doneDays := 0, 0
			for _, d := range weekDays {
				isSched, err := habit.IsScheduledOn(h, d)
				if err != nil {
					return Status{}, err
				}
				if !isSched {
					continue
				}
				scheduled++
				if habit.IsDoneOnDay(s, h, d) {
					doneDays++
				}
			}
			weekRows = append(weekRows, WeekHabitRow{
				ID:                h.ID,
				Name:              h.Name,
				Period:            model.PeriodDay,
				NeedsDeclaration:  h.NeedsDeclaration,
				ScheduledDays:     &scheduled,
				DoneScheduledDays: &doneDays,
			})
		} else {
			raw, counted, err := habit.WeekSums(s, h, weekStart)
			if err != nil {
				return Status{}, err
			}
			target := h.Target.Quantity
			weekRows = append(weekRows, WeekHabitRow{
				ID:               h.ID,
				Name:             h.Name,
				Period:           model.PeriodWeek,
				NeedsDeclaration: h.NeedsDeclaration,
				Target:           &target,
				Quantity:         &counted,
				RawQuantity:      &raw,
			})
		}
	}

	return Status{
		Today: TodaySection{Date: date, Habits: todayRows},
		Week: WeekSection{
			ID:        weekID,
			StartDate: weekStart,
			EndDate:   weekEnd,
			Habits:    weekRows,
		},
	}, nil
}
