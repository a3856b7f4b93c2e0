// Package parser resolves natural language date expressions at the CLI
// boundary. Core packages only ever see validated YYYY-MM-DD strings.
package parser

import (
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/manav03panchal/habitual/internal/dates"
	"github.com/manav03panchal/habitual/internal/errors"
)

// ParseDate resolves input to a YYYY-MM-DD date string relative to the
// logical today. Exact YYYY-MM-DD input bypasses the natural language
// parser; "today" and the empty string resolve to today itself.
func ParseDate(input, today string) (string, error) {
	in := strings.TrimSpace(input)
	if in == "" || strings.EqualFold(in, "today") {
		return today, nil
	}

	if c, err := dates.Parse(in, "date"); err == nil {
		return c.String(), nil
	}
	if len(in) == 10 && in[4] == '-' && in[7] == '-' {
		// Shaped like a calendar date but not a valid one; don't let the
		// natural language parser guess at it.
		return "", errors.NewUsageErrorf("Invalid date: %s", input)
	}

	anchor, err := dates.Parse(today, "today")
	if err != nil {
		return "", err
	}
	cfg := &dateparser.Configuration{
		CurrentTime: time.Date(anchor.Year, time.Month(anchor.Month), anchor.Day,
			12, 0, 0, 0, time.UTC),
	}
	result, err := dateparser.Parse(cfg, in)
	if err != nil {
		return "", errors.NewUsageErrorf("Invalid date: %s", input)
	}

	t := result.Time
	return dates.Civil{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}.String(), nil
}
