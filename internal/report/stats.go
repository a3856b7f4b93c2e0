// Package report builds the read-only views: stats, status, due, recap
// and the export payload. Everything here is computed from the store via
// the completion policy in the habit package; nothing mutates state.
package report

import (
	"github.com/manav03panchal/habitual/internal/dates"
	"github.com/manav03panchal/habitual/internal/habit"
	"github.com/manav03panchal/habitual/internal/model"
)

// Window is an inclusive date range.
type Window struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SuccessRate reports successes over eligible periods. Rate is nil when
// there are no eligible periods.
type SuccessRate struct {
	Successes int      `json:"successes"`
	Eligible  int      `json:"eligible"`
	Rate      *float64 `json:"rate"`
}

// StatsRow is the per-habit stats view for one window.
type StatsRow struct {
	HabitID       string       `json:"habit_id"`
	Name          string       `json:"name"`
	Period        model.Period `json:"period"`
	Target        int          `json:"target"`
	Window        Window       `json:"window"`
	CurrentStreak int          `json:"current_streak"`
	LongestStreak int          `json:"longest_streak"`
	SuccessRate   SuccessRate  `json:"success_rate"`
}

func newSuccessRate(successes, eligible int) SuccessRate {
	sr := SuccessRate{Successes: successes, Eligible: eligible}
	if eligible > 0 {
		rate := float64(successes) / float64(eligible)
		sr.Rate = &rate
	}
	return sr
}

// streaks computes (current, longest) over an ordered success sequence.
// Current counts backward from the most recent period to the first
// failure; longest is the longest run anywhere.
func streaks(ok []bool) (current, longest int) {
	for i := len(ok) - 1; i >= 0; i-- {
		if !ok[i] {
			break
		}
		current++
	}
	run := 0
	for _, v := range ok {
		if v {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return current, longest
}

func dailyStats(s *model.Store, h *model.Habit, from, to string) (StatsRow, error) {
	days, err := dates.Range(from, to)
	if err != nil {
		return StatsRow{}, err
	}

	var ok []bool
	for d := range days {
		scheduled, err := habit.IsScheduledOn(h, d)
		if err != nil {
			return StatsRow{}, err
		}
		if !scheduled {
			continue
		}
		ok = append(ok, habit.IsDoneOnDay(s, h, d))
	}

	successes := 0
	for _, v := range ok {
		if v {
			successes++
		}
	}
	current, longest := streaks(ok)

	return StatsRow{
		HabitID:       h.ID,
		Name:          h.Name,
		Period:        model.PeriodDay,
		Target:        h.Target.Quantity,
		Window:        Window{From: from, To: to},
		CurrentStreak: current,
		LongestStreak: longest,
		SuccessRate:   newSuccessRate(successes, len(ok)),
	}, nil
}

// weekStarts enumerates ISO week start dates covering [from, to].
func weekStarts(from, to string) ([]string, error) {
	start, err := dates.WeekStart(from)
	if err != nil {
		return nil, err
	}
	end, err := dates.WeekStart(to)
	if err != nil {
		return nil, err
	}
	var out []string
	for cur := start; cur <= end; {
		out = append(out, cur)
		next, err := dates.AddDays(cur, 7)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return out, nil
}

func weeklyStats(s *model.Store, h *model.Habit, from, to string) (StatsRow, error) {
	all, err := weekStarts(from, to)
	if err != nil {
		return StatsRow{}, err
	}

	// A week is eligible when it overlaps the habit's lifetime.
	var ok []bool
	for _, ws := range all {
		we, err := dates.WeekEnd(ws)
		if err != nil {
			return StatsRow{}, err
		}
		if we < h.CreatedDate {
			continue
		}
		done, err := habit.IsDoneInWeek(s, h, ws)
		if err != nil {
			return StatsRow{}, err
		}
		ok = append(ok, done)
	}

	successes := 0
	for _, v := range ok {
		if v {
			successes++
		}
	}
	current, longest := streaks(ok)

	return StatsRow{
		HabitID:       h.ID,
		Name:          h.Name,
		Period:        model.PeriodWeek,
		Target:        h.Target.Quantity,
		Window:        Window{From: from, To: to},
		CurrentStreak: current,
		LongestStreak: longest,
		SuccessRate:   newSuccessRate(successes, len(ok)),
	}, nil
}

// BuildStats computes stats rows for the given habits over [from, to],
// ordered by habit name.
func BuildStats(s *model.Store, habits []model.Habit, from, to string) ([]StatsRow, error) {
	sorted := make([]model.Habit, len(habits))
	copy(sorted, habits)
	habit.SortStable(sorted)

	rows := make([]StatsRow, 0, len(sorted))
	for i := range sorted {
		h := &sorted[i]
		var (
			row StatsRow
			err error
		)
		if h.Target.Period == model.PeriodDay {
			row, err = dailyStats(s, h, from, to)
		} else {
			row, err = weeklyStats(s, h, from, to)
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// DefaultStatsWindow returns the default window for a habit when the
// caller gave no explicit range: day habits look back 30 days from `to`;
// week habits cover the 12 ISO weeks ending with the week of `to`.
func DefaultStatsWindow(h *model.Habit, to string) (Window, error) {
	if h.Target.Period == model.PeriodWeek {
		endWeek, err := dates.WeekStart(to)
		if err != nil {
			return Window{}, err
		}
		from, err := dates.AddDays(endWeek, -7*11)
		if err != nil {
			return Window{}, err
		}
		wto, err := dates.AddDays(endWeek, 6)
		if err != nil {
			return Window{}, err
		}
		return Window{From: from, To: wto}, nil
	}
	from, err := dates.AddDays(to, -29)
	if err != nil {
		return Window{}, err
	}
	return Window{From: from, To: to}, nil
}
