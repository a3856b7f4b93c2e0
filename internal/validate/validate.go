// Package validate provides input validation helpers for the Habitual CLI.
// Everything crossing the core boundary (names, reasons, timestamps,
// quantities) is validated here before any state mutation.
package validate

import (
	"strings"
	"time"

	"github.com/manav03panchal/habitual/internal/errors"
)

// HabitName trims and validates a habit name, returning the normalized
// form.
func HabitName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", errors.NewUsageError("Habit name is required")
	}
	return n, nil
}

// Timestamp validates an RFC 3339 date-time-with-offset string and
// returns its trimmed form. The label names the field in error messages.
func Timestamp(ts, label string) (string, error) {
	t := strings.TrimSpace(ts)
	if t == "" {
		return "", errors.NewUsageErrorf("Invalid %s: (empty)", label)
	}
	if _, err := time.Parse(time.RFC3339, t); err != nil {
		return "", errors.NewUsageErrorf("Invalid %s: %s", label, ts)
	}
	return t, nil
}

// Reason trims and validates a required free-text field (excuse reasons,
// penalty action reasons, declaration texts).
func Reason(text, what string) (string, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return "", errors.NewUsageErrorf("%s is required", what)
	}
	return t, nil
}

// Positive validates that an integer field is at least 1.
func Positive(field string, value int) error {
	if value < 1 {
		return errors.NewUsageErrorf("Invalid %s", field)
	}
	return nil
}

// NonNegative validates that an integer field is at least 0.
func NonNegative(field string, value int) error {
	if value < 0 {
		return errors.NewUsageErrorf("Invalid %s", field)
	}
	return nil
}
