package habit

import (
	"fmt"

	"github.com/manav03panchal/habitual/internal/dates"
	"github.com/manav03panchal/habitual/internal/model"
	"github.com/manav03panchal/habitual/internal/validate"
)

// NextExcuseID allocates the next sequential excuse id.
func NextExcuseID(s *model.Store) string {
	n := s.Meta.NextExcuseNumber
	s.Meta.NextExcuseNumber = n + 1
	return fmt.Sprintf("e%06d", n)
}

// AllowedExcusesInWeek counts the habit's Allowed excuses recorded in the
// ISO week starting at weekStart.
func AllowedExcusesInWeek(s *model.Store, habitID, weekStart string) (int, error) {
	weekEnd, err := dates.WeekEnd(weekStart)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range s.Excuses {
		if e.HabitID == habitID && e.Kind == model.ExcuseAllowed &&
			e.Date >= weekStart && e.Date <= weekEnd {
			n++
		}
	}
	return n, nil
}

// ExcuseResult reports the stored excuse and the quota state after the
// write.
type ExcuseResult struct {
	Excuse    model.Excuse
	Used      int
	Remaining int
}

// Excuse records an excuse request against the weekly quota. An Allowed
// request arriving when the quota is exhausted is stored as Denied; the
// record reflects what actually happened, not what was asked for, and
// the decision is made exactly once at write time.
func Excuse(s *model.Store, habitID, date, ts string, requested model.ExcuseKind,
	reason string, quotaPerWeek int) (ExcuseResult, error) {

	if err := dates.Validate(date, "date"); err != nil {
		return ExcuseResult{}, err
	}
	tts, err := validate.Timestamp(ts, "ts")
	if err != nil {
		return ExcuseResult{}, err
	}
	r, err := validate.Reason(reason, "Excuse reason")
	if err != nil {
		return ExcuseResult{}, err
	}

	weekStart, err := dates.WeekStart(date)
	if err != nil {
		return ExcuseResult{}, err
	}
	used, err := AllowedExcusesInWeek(s, habitID, weekStart)
	if err != nil {
		return ExcuseResult{}, err
	}
	remaining := max(quotaPerWeek-used, 0)

	kind := requested
	if requested == model.ExcuseAllowed && remaining == 0 {
		kind = model.ExcuseDenied
	}

	ex := model.Excuse{
		ID:      NextExcuseID(s),
		HabitID: habitID,
		Date:    date,
		TS:      tts,
		Kind:    kind,
		Reason:  r,
	}
	s.Excuses = append(s.Excuses, ex)

	if kind == model.ExcuseAllowed {
		used++
	}
	return ExcuseResult{
		Excuse:    ex,
		Used:      used,
		Remaining: max(quotaPerWeek-used, 0),
	}, nil
}

// HasAllowedExcuse reports whether (habit, date) carries an Allowed
// excuse, exempting the date from penalty evaluation.
func HasAllowedExcuse(s *model.Store, habitID, date string) bool {
	for _, e := range s.Excuses {
		if e.HabitID == habitID && e.Date == date && e.Kind == model.ExcuseAllowed {
			return true
		}
	}
	return false
}
