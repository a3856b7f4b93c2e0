package habit

import (
	"sort"

	"github.com/manav03panchal/habitual/internal/dates"
	"github.com/manav03panchal/habitual/internal/model"
	"github.com/manav03panchal/habitual/internal/validate"
)

func findCheckin(s *model.Store, habitID, date string) int {
	for i := range s.Checkins {
		if s.Checkins[i].HabitID == habitID && s.Checkins[i].Date == date {
			return i
		}
	}
	return -1
}

// Quantity returns the raw recorded quantity for (habit, date), 0 if no
// check-in exists.
func Quantity(s *model.Store, habitID, date string) int {
	if i := findCheckin(s, habitID, date); i >= 0 {
		return s.Checkins[i].Quantity
	}
	return 0
}

// SetQuantity upserts the check-in for (habit, date). A quantity of 0
// removes the record entirely, so setting 0 and deleting are the same
// operation.
func SetQuantity(s *model.Store, habitID, date string, quantity int) error {
	if err := dates.Validate(date, "date"); err != nil {
		return err
	}
	if err := validate.NonNegative("quantity", quantity); err != nil {
		return err
	}

	i := findCheckin(s, habitID, date)
	if quantity == 0 {
		if i >= 0 {
			s.Checkins = append(s.Checkins[:i], s.Checkins[i+1:]...)
		}
		return nil
	}

	if i >= 0 {
		s.Checkins[i].Quantity = quantity
		return nil
	}
	s.Checkins = append(s.Checkins, model.Checkin{
		HabitID:  habitID,
		Date:     date,
		Quantity: quantity,
	})
	return nil
}

// AddQuantity increments the check-in for (habit, date) by delta (>= 1)
// and returns the new total.
func AddQuantity(s *model.Store, habitID, date string, delta int) (int, error) {
	if err := dates.Validate(date, "date"); err != nil {
		return 0, err
	}
	if err := validate.Positive("quantity", delta); err != nil {
		return 0, err
	}

	total := Quantity(s, habitID, date) + delta
	if err := SetQuantity(s, habitID, date, total); err != nil {
		return 0, err
	}
	return total, nil
}

func sortCheckins(cs []model.Checkin) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].Date != cs[j].Date {
			return cs[i].Date < cs[j].Date
		}
		return cs[i].HabitID < cs[j].HabitID
	})
}

// CheckinsForHabit returns the habit's check-ins sorted by date.
func CheckinsForHabit(s *model.Store, habitID string) []model.Checkin {
	var out []model.Checkin
	for _, c := range s.Checkins {
		if c.HabitID == habitID {
			out = append(out, c)
		}
	}
	sortCheckins(out)
	return out
}

// CheckinsInRange returns check-ins filtered by an optional habit-id set
// and an optional inclusive date range, sorted by (date, habit_id).
func CheckinsInRange(s *model.Store, from, to string, habitIDs map[string]bool) []model.Checkin {
	var out []model.Checkin
	for _, c := range s.Checkins {
		if habitIDs != nil && !habitIDs[c.HabitID] {
			continue
		}
		if from != "" && c.Date < from {
			continue
		}
		if to != "" && c.Date > to {
			continue
		}
		out = append(out, c)
	}
	sortCheckins(out)
	return out
}
