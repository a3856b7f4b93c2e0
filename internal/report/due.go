package report

import (
	"github.com/manav03panchal/habitual/internal/dates"
	"github.com/manav03panchal/habitual/internal/habit"
	"github.com/manav03panchal/habitual/internal/model"
)

// Due lists the scheduled, not-yet-done habits for a date.
type Due struct {
	Date   string    `json:"date"`
	Due    []DueRow  `json:"due"`
	Counts DueCounts `json:"counts"`
}

// DueRow is one habit still owing progress. Remaining saturates at 0.
type DueRow struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Period    model.Period `json:"period"`
	Target    int          `json:"target"`
	Quantity  int          `json:"quantity"`
	Remaining int          `json:"remaining"`
	Scheduled bool         `json:"scheduled"`
	Done      bool         `json:"done"`
}

// DueCounts carries the summary count for the view.
type DueCounts struct {
	Due int `json:"due"`
}

// BuildDue builds the due view for a date, sorted by habit name.
func BuildDue(s *model.Store, date string, includeArchived bool) (Due, error) {
	weekStart, err := dates.WeekStart(date)
	if err != nil {
		return Due{}, err
	}

	habits := habit.List(s, includeArchived)

	var rows []DueRow
	for i := range habits {
		h := &habits[i]
		scheduled, err := habit.IsScheduledOn(h, date)
		if err != nil {
			return Due{}, err
		}
		if !scheduled {
			continue
		}

		var counted int
		var done bool
		if h.Target.Period == model.PeriodDay {
			counted = habit.CountedQuantity(s, h, date)
			done = habit.IsDoneOnDay(s, h, date)
		} else {
			_, counted, err = habit.WeekSums(s, h, weekStart)
			if err != nil {
				return Due{}, err
			}
			done = counted >= h.Target.Quantity
		}
		if done {
			continue
		}

		rows = append(rows, DueRow{
			ID:        h.ID,
			Name:      h.Name,
			Period:    h.Target.Period,
			Target:    h.Target.Quantity,
			Quantity:  counted,
			Remaining: max(h.Target.Quantity-counted, 0),
			Scheduled: true,
		})
	}

	return Due{
		Date:   date,
		Due:    rows,
		Counts: DueCounts{Due: len(rows)},
	}, nil
}
