// Package schedule converts schedule patterns to canonical sets of ISO
// weekdays and back. Canonical form is a sorted, de-duplicated day list;
// the presets everyday/weekdays/weekends always print as their preset
// name so storage and display stay byte-stable regardless of input order.
package schedule

import (
	"slices"
	"strings"

	"github.com/manav03panchal/habitual/internal/errors"
)

var dayNameToISO = map[string]int{
	"mon": 1,
	"tue": 2,
	"wed": 3,
	"thu": 4,
	"fri": 5,
	"sat": 6,
	"sun": 7,
}

var isoToDayName = [8]string{"", "mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// Schedule is a canonical day-of-week schedule.
type Schedule struct {
	Kind string `json:"type"`
	Days []int  `json:"days"`
}

// ParsePattern parses a schedule pattern: one of the named presets
// (everyday, weekdays, weekends) or a comma-separated list of 3-letter
// weekday abbreviations, case-insensitive.
func ParsePattern(raw string) (Schedule, error) {
	pattern := strings.ToLower(strings.TrimSpace(raw))
	if pattern == "" {
		return Schedule{}, errors.NewUsageError("Invalid schedule pattern")
	}

	var days []int
	switch pattern {
	case "everyday":
		days = []int{1, 2, 3, 4, 5, 6, 7}
	case "weekdays":
		days = []int{1, 2, 3, 4, 5}
	case "weekends":
		days = []int{6, 7}
	default:
		for _, part := range strings.Split(pattern, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			iso, ok := dayNameToISO[p]
			if !ok {
				return Schedule{}, errors.NewUsageErrorf("Invalid schedule pattern: %s", raw)
			}
			if !slices.Contains(days, iso) {
				days = append(days, iso)
			}
		}
		if len(days) == 0 {
			return Schedule{}, errors.NewUsageErrorf("Invalid schedule pattern: %s", raw)
		}
		slices.Sort(days)
	}

	return Schedule{Kind: "days_of_week", Days: days}, nil
}

// String renders the canonical pattern. Presets win over day lists.
func (s Schedule) String() string {
	days := slices.Clone(s.Days)
	slices.Sort(days)

	switch {
	case slices.Equal(days, []int{1, 2, 3, 4, 5, 6, 7}):
		return "everyday"
	case slices.Equal(days, []int{1, 2, 3, 4, 5}):
		return "weekdays"
	case slices.Equal(days, []int{6, 7}):
		return "weekends"
	}

	names := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 1 && d <= 7 {
			names = append(names, isoToDayName[d])
		}
	}
	return strings.Join(names, ",")
}

// Validate checks the structural invariants of a stored schedule.
func (s Schedule) Validate() error {
	if s.Kind != "days_of_week" {
		return errors.NewUsageError("Invalid schedule")
	}
	if len(s.Days) == 0 {
		return errors.NewUsageError("Invalid schedule")
	}
	for _, d := range s.Days {
		if d < 1 || d > 7 {
			return errors.NewUsageError("Invalid schedule")
		}
	}
	return nil
}

// Contains reports whether the ISO weekday is part of the schedule.
func (s Schedule) Contains(weekday int) bool {
	return slices.Contains(s.Days, weekday)
}
