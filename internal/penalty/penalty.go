// Package penalty implements the escalating-debt engine: a small
// event-sourced state machine per (habit, trigger date). Debt and action
// ids are derived from content, so ticking a date twice or closing a
// debt twice are no-ops by construction rather than by bookkeeping.
package penalty

import (
	"fmt"
	"sort"
	"strings"

	"github.com/manav03panchal/habitual/internal/dates"
	"github.com/manav03panchal/habitual/internal/errors"
	"github.com/manav03panchal/habitual/internal/habit"
	"github.com/manav03panchal/habitual/internal/model"
	"github.com/manav03panchal/habitual/internal/validate"
)

func compactDate(date string) string {
	return strings.ReplaceAll(date, "-", "")
}

// DebtID derives the deterministic debt id for (habit, trigger date).
func DebtID(habitID, triggerDate string) string {
	return fmt.Sprintf("pd_%s_%s", habitID, compactDate(triggerDate))
}

// ActionID derives the deterministic action id for (debt, kind).
func ActionID(debtID string, kind model.PenaltyActionKind) string {
	return fmt.Sprintf("pa_%s_%s", debtID, kind)
}

// NextRuleID allocates the next sequential penalty rule id.
func NextRuleID(s *model.Store) string {
	n := s.Meta.NextPenaltyRuleNumber
	s.Meta.NextPenaltyRuleNumber = n + 1
	return fmt.Sprintf("pr%06d", n)
}

// UpsertRule arms (or re-arms) the penalty rule for a habit. Re-arming
// replaces the parameters in place and keeps the rule id.
func UpsertRule(s *model.Store, habitID, armedDate, armedTS string,
	multiplier, cap, deadlineDays int) (model.PenaltyRule, error) {

	if err := dates.Validate(armedDate, "date"); err != nil {
		return model.PenaltyRule{}, err
	}
	ts, err := validate.Timestamp(armedTS, "ts")
	if err != nil {
		return model.PenaltyRule{}, err
	}
	if err := validate.Positive("multiplier", multiplier); err != nil {
		return model.PenaltyRule{}, err
	}
	if err := validate.Positive("cap", cap); err != nil {
		return model.PenaltyRule{}, err
	}
	if err := validate.NonNegative("deadline days", deadlineDays); err != nil {
		return model.PenaltyRule{}, err
	}

	for i := range s.PenaltyRules {
		if s.PenaltyRules[i].HabitID == habitID {
			r := &s.PenaltyRules[i]
			r.Multiplier = multiplier
			r.Cap = cap
			r.DeadlineDays = deadlineDays
			r.ArmedDate = armedDate
			r.ArmedTS = ts
			return *r, nil
		}
	}

	rule := model.PenaltyRule{
		ID:           NextRuleID(s),
		HabitID:      habitID,
		Multiplier:   multiplier,
		Cap:          cap,
		DeadlineDays: deadlineDays,
		ArmedDate:    armedDate,
		ArmedTS:      ts,
	}
	s.PenaltyRules = append(s.PenaltyRules, rule)
	return rule, nil
}

// closedDebts returns the set of debt ids referenced by any action.
func closedDebts(s *model.Store) map[string]bool {
	closed := make(map[string]bool, len(s.PenaltyActions))
	for _, a := range s.PenaltyActions {
		closed[a.DebtID] = true
	}
	return closed
}

// OutstandingAsOf returns debts with no closing action and due_date <=
// date, sorted by (due_date, habit_id, id).
func OutstandingAsOf(s *model.Store, date string) ([]model.PenaltyDebt, error) {
	if err := dates.Validate(date, "date"); err != nil {
		return nil, err
	}
	closed := closedDebts(s)

	var out []model.PenaltyDebt
	for _, d := range s.PenaltyDebts {
		if !closed[d.ID] && d.DueDate <= date {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DueDate != out[j].DueDate {
			return out[i].DueDate < out[j].DueDate
		}
		if out[i].HabitID != out[j].HabitID {
			return out[i].HabitID < out[j].HabitID
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Tick evaluates one date across all armed, scheduled, day-period habits
// and creates any newly-due debts. A habit with an Allowed excuse for the
// date is skipped entirely. A debt already outstanding and due on the
// date escalates into the new debt regardless of whether the habit was
// done. Re-ticking a date is a pure no-op because the debt id already
// exists. Returns only the debts created by this call, sorted by id.
func Tick(s *model.Store, date, ts string, includeArchived bool) ([]model.PenaltyDebt, error) {
	if err := dates.Validate(date, "date"); err != nil {
		return nil, err
	}
	tts, err := validate.Timestamp(ts, "ts")
	if err != nil {
		return nil, err
	}

	rules := make(map[string]model.PenaltyRule, len(s.PenaltyRules))
	for _, r := range s.PenaltyRules {
		rules[r.HabitID] = r
	}
	closed := closedDebts(s)

	created := []model.PenaltyDebt{}

	for i := range s.Habits {
		h := &s.Habits[i]
		if !includeArchived && h.Archived {
			continue
		}
		if h.Target.Period != model.PeriodDay {
			// Week-period habits accrue no penalty debt.
			continue
		}

		rule, ok := rules[h.ID]
		if !ok {
			continue
		}

		scheduled, err := habit.IsScheduledOn(h, date)
		if err != nil {
			return nil, err
		}
		if !scheduled {
			continue
		}

		if habit.HasAllowedExcuse(s, h.ID, date) {
			continue
		}

		habitDone := habit.IsDoneOnDay(s, h, date)

		// At most one outstanding debt can be due exactly on this date;
		// take the largest quantity defensively.
		var carry *model.PenaltyDebt
		for j := range s.PenaltyDebts {
			d := &s.PenaltyDebts[j]
			if d.HabitID != h.ID || d.DueDate != date || closed[d.ID] {
				continue
			}
			if carry == nil || d.Quantity > carry.Quantity {
				carry = d
			}
		}

		if habitDone && carry == nil {
			continue
		}

		debtID := DebtID(h.ID, date)
		if s.FindDebt(debtID) != nil {
			// idempotent
			continue
		}

		base := h.Target.Quantity
		if carry != nil {
			base = max(carry.Quantity, h.Target.Quantity)
		}
		qty := min(base*rule.Multiplier, rule.Cap)

		dueDate, err := dates.AddDays(date, 1)
		if err != nil {
			return nil, err
		}

		debt := model.PenaltyDebt{
			ID:          debtID,
			HabitID:     h.ID,
			TriggerDate: date,
			DueDate:     dueDate,
			Quantity:    qty,
			RuleID:      rule.ID,
			CreatedDate: date,
			CreatedTS:   tts,
		}
		s.PenaltyDebts = append(s.PenaltyDebts, debt)
		created = append(created, debt)
	}

	sort.SliceStable(created, func(i, j int) bool {
		return created[i].ID < created[j].ID
	})
	return created, nil
}

// Close records a resolve or void action for a debt. Unknown debt ids
// are a NotFoundError. If any action already exists for the debt, that
// first action is returned unchanged regardless of the requested kind:
// a debt can be closed at most once and repeated calls are no-ops.
func Close(s *model.Store, debtID string, kind model.PenaltyActionKind,
	date, ts, reason string) (model.PenaltyAction, error) {

	if err := dates.Validate(date, "date"); err != nil {
		return model.PenaltyAction{}, err
	}
	tts, err := validate.Timestamp(ts, "ts")
	if err != nil {
		return model.PenaltyAction{}, err
	}
	r, err := validate.Reason(reason, "Reason")
	if err != nil {
		return model.PenaltyAction{}, err
	}

	if s.FindDebt(debtID) == nil {
		return model.PenaltyAction{}, errors.NewNotFoundError(
			fmt.Sprintf("Penalty debt not found: %s", debtID), errors.ErrDebtNotFound)
	}

	// First action wins, whatever its kind.
	for _, a := range s.PenaltyActions {
		if a.DebtID == debtID {
			return a, nil
		}
	}

	action := model.PenaltyAction{
		ID:     ActionID(debtID, kind),
		DebtID: debtID,
		Kind:   kind,
		Date:   date,
		TS:     tts,
		Reason: r,
	}
	s.PenaltyActions = append(s.PenaltyActions, action)
	return action, nil
}
