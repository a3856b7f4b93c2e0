package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/manav03panchal/habitual/internal/dates"
	"github.com/manav03panchal/habitual/internal/errors"
	"github.com/manav03panchal/habitual/internal/habit"
	"github.com/manav03panchal/habitual/internal/model"
)

// RecapRange names a recap window relative to today.
type RecapRange string

const (
	// RecapYTD covers Jan 1 of the current year through today.
	RecapYTD RecapRange = "ytd"
	// RecapMonth covers the past 30 days including today.
	RecapMonth RecapRange = "month"
	// RecapWeek covers the past 7 days including today.
	RecapWeek RecapRange = "week"
)

// ParseRecapRange validates a range name.
func ParseRecapRange(s string) (RecapRange, error) {
	switch RecapRange(strings.ToLower(strings.TrimSpace(s))) {
	case RecapYTD:
		return RecapYTD, nil
	case RecapMonth:
		return RecapMonth, nil
	case RecapWeek:
		return RecapWeek, nil
	default:
		return "", errors.NewUsageErrorf("Invalid recap range: %s", s)
	}
}

// Dates resolves the inclusive window for the range relative to today.
func (r RecapRange) Dates(today string) (from, to string, err error) {
	if err := dates.Validate(today, "today"); err != nil {
		return "", "", err
	}
	switch r {
	case RecapYTD:
		return today[0:4] + "-01-01", today, nil
	case RecapMonth:
		from, err = dates.AddDays(today, -29)
		return from, today, err
	case RecapWeek:
		from, err = dates.AddDays(today, -6)
		return from, today, err
	default:
		return "", "", errors.NewUsageErrorf("Invalid recap range: %s", r)
	}
}

// RecapRow is one habit's completion percentage over the range.
type RecapRow struct {
	HabitID     string         `json:"habit_id"`
	Name        string         `json:"name"`
	Period      model.Period   `json:"period"`
	TargetLabel string         `json:"target_label"`
	Target      int            `json:"target"`
	Successes   int            `json:"successes"`
	Eligible    int            `json:"eligible"`
	Rate        *float64       `json:"rate"`
	Percent     *int           `json:"percent"`
	Range       RecapRangeInfo `json:"range"`
}

// RecapRangeInfo records which window the row was computed over.
type RecapRangeInfo struct {
	Kind string `json:"kind"`
	From string `json:"from"`
	To   string `json:"to"`
}

func recapRow(h *model.Habit, successes, eligible int, r RecapRange, from, to string) RecapRow {
	row := RecapRow{
		HabitID:     h.ID,
		Name:        h.Name,
		Period:      h.Target.Period,
		TargetLabel: fmt.Sprintf("%d/%s", h.Target.Quantity, h.Target.Period),
		Target:      h.Target.Quantity,
		Successes:   successes,
		Eligible:    eligible,
		Range:       RecapRangeInfo{Kind: string(r), From: from, To: to},
	}
	if eligible > 0 {
		rate := float64(successes) / float64(eligible)
		pct := int(math.Round(rate * 100))
		row.Rate = &rate
		row.Percent = &pct
	}
	return row
}

func dailyRecap(s *model.Store, h *model.Habit, r RecapRange, from, to string) (RecapRow, error) {
	days, err := dates.Range(from, to)
	if err != nil {
		return RecapRow{}, err
	}

	eligible, successes := 0, 0
	for d := range days {
		scheduled, err := habit.IsScheduledOn(h, d)
		if err != nil {
			return RecapRow{}, err
		}
		if !scheduled {
			continue
		}
		eligible++
		if habit.IsDoneOnDay(s, h, d) {
			successes++
		}
	}
	return recapRow(h, successes, eligible, r, from, to), nil
}

func weeklyRecap(s *model.Store, h *model.Habit, r RecapRange, from, to string) (RecapRow, error) {
	all, err := weekStarts(from, to)
	if err != nil {
		return RecapRow{}, err
	}

	eligible, successes := 0, 0
	for _, ws := range all {
		we, err := dates.WeekEnd(ws)
		if err != nil {
			return RecapRow{}, err
		}
		if we < h.CreatedDate {
			continue
		}
		eligible++
		done, err := habit.IsDoneInWeek(s, h, ws)
		if err != nil {
			return RecapRow{}, err
		}
		if done {
			successes++
		}
	}
	return recapRow(h, successes, eligible, r, from, to), nil
}

// BuildRecap computes completion percentages per habit over the named
// range. Rows sort by percentage descending (undefined percentages
// last, ties by lower-cased name); behindFirst reverses to ascending so
// the habits most behind lead the table.
func BuildRecap(s *model.Store, habits []model.Habit, r RecapRange, today string,
	behindFirst bool) ([]RecapRow, error) {

	from, to, err := r.Dates(today)
	if err != nil {
		return nil, err
	}

	sorted := make([]model.Habit, len(habits))
	copy(sorted, habits)
	habit.SortStable(sorted)

	rows := make([]RecapRow, 0, len(sorted))
	for i := range sorted {
		h := &sorted[i]
		var (
			row RecapRow
			err error
		)
		if h.Target.Period == model.PeriodDay {
			row, err = dailyRecap(s, h, r, from, to)
		} else {
			row, err = weeklyRecap(s, h, r, from, to)
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Percent, rows[j].Percent
		switch {
		case a != nil && b != nil:
			if *a != *b {
				if behindFirst {
					return *a < *b
				}
				return *a > *b
			}
			return strings.ToLower(rows[i].Name) < strings.ToLower(rows[j].Name)
		case a != nil:
			return true
		case b != nil:
			return false
		default:
			return strings.ToLower(rows[i].Name) < strings.ToLower(rows[j].Name)
		}
	})

	return rows, nil
}
