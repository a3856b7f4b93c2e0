// Package dates implements calendar arithmetic on naive YYYY-MM-DD date
// strings. Dates carry no timezone; lexicographic order on the strings is
// chronological order. Conversion between civil dates and a linear day
// count uses Howard Hinnant's days-from-civil / civil-from-days algorithm,
// exact over the whole proleptic Gregorian calendar.
package dates

import (
	"fmt"
	"iter"
	"time"

	"github.com/manav03panchal/habitual/internal/errors"
)

// Civil is a validated calendar date.
type Civil struct {
	Year  int
	Month int
	Day   int
}

// String formats the date as YYYY-MM-DD.
func (c Civil) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", c.Year, c.Month, c.Day)
}

// IsValid reports whether (y, m, d) is a real Gregorian calendar date.
// Feb 29 is valid iff the year is divisible by 4 and (not by 100, or by
// 400).
func IsValid(y, m, d int) bool {
	if m < 1 || m > 12 || d < 1 {
		return false
	}
	dim := 31
	switch m {
	case 4, 6, 9, 11:
		dim = 30
	case 2:
		if (y%4 == 0 && y%100 != 0) || y%400 == 0 {
			dim = 29
		} else {
			dim = 28
		}
	}
	return d <= dim
}

// DaysFromCivil returns the number of days since the Unix epoch
// (1970-01-01) for the given civil date. Negative for earlier dates.
func DaysFromCivil(y, m, d int) int {
	if m <= 2 {
		y--
	}
	era := y
	if y < 0 {
		era = y - 399
	}
	era /= 400
	yoe := y - era*400
	mp := m + 9
	if m > 2 {
		mp = m - 3
	}
	doy := (153*mp+2)/5 + d - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

// CivilFromDays is the inverse of DaysFromCivil.
func CivilFromDays(z int) Civil {
	z += 719468
	era := z
	if z < 0 {
		era = z - 146096
	}
	era /= 146097
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if mp >= 10 {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return Civil{Year: y, Month: m, Day: d}
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// Parse validates a YYYY-MM-DD string and returns its civil date. The
// label names the field in the error message ("date", "from", ...).
func Parse(s, label string) (Civil, error) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return Civil{}, errors.NewUsageErrorf("Invalid %s: %s", label, s)
	}
	ys, ms, ds := s[0:4], s[5:7], s[8:10]
	if !digits(ys) || !digits(ms) || !digits(ds) {
		return Civil{}, errors.NewUsageErrorf("Invalid %s: %s", label, s)
	}
	var y, m, d int
	fmt.Sscanf(ys, "%d", &y)
	fmt.Sscanf(ms, "%d", &m)
	fmt.Sscanf(ds, "%d", &d)
	if !IsValid(y, m, d) {
		return Civil{}, errors.NewUsageErrorf("Invalid %s: %s", label, s)
	}
	return Civil{Year: y, Month: m, Day: d}, nil
}

// Validate checks a date string without returning its components.
func Validate(s, label string) error {
	_, err := Parse(s, label)
	return err
}

// AddDays returns the date offset by delta days (any sign, any magnitude).
func AddDays(date string, delta int) (string, error) {
	c, err := Parse(date, "date")
	if err != nil {
		return "", err
	}
	return CivilFromDays(DaysFromCivil(c.Year, c.Month, c.Day) + delta).String(), nil
}

// ISOWeekday returns the ISO weekday of the date: 1 (Monday) .. 7 (Sunday).
func ISOWeekday(date string) (int, error) {
	c, err := Parse(date, "date")
	if err != nil {
		return 0, err
	}
	days := DaysFromCivil(c.Year, c.Month, c.Day)
	// 1970-01-01 was a Thursday.
	wd := (days+3)%7 + 1
	if wd <= 0 {
		wd += 7
	}
	return wd, nil
}

// WeekStart returns the Monday of the ISO week containing date.
func WeekStart(date string) (string, error) {
	wd, err := ISOWeekday(date)
	if err != nil {
		return "", err
	}
	return AddDays(date, -(wd - 1))
}

// WeekEnd returns the Sunday of the ISO week containing date.
func WeekEnd(date string) (string, error) {
	start, err := WeekStart(date)
	if err != nil {
		return "", err
	}
	return AddDays(start, 6)
}

// WeekID returns the ISO week label (YYYY-Www) of the week containing
// date. A week belongs to the year containing its Thursday; week 1 is the
// week containing Jan 4 of that year.
func WeekID(date string) (string, error) {
	start, err := WeekStart(date)
	if err != nil {
		return "", err
	}
	thursday, err := AddDays(start, 3)
	if err != nil {
		return "", err
	}
	th, err := Parse(thursday, "date")
	if err != nil {
		return "", err
	}
	weekYear := th.Year

	jan4 := fmt.Sprintf("%04d-01-04", weekYear)
	week1Monday, err := WeekStart(jan4)
	if err != nil {
		return "", err
	}

	sc, _ := Parse(start, "date")
	wc, _ := Parse(week1Monday, "date")
	week := 1 + (DaysFromCivil(sc.Year, sc.Month, sc.Day)-DaysFromCivil(wc.Year, wc.Month, wc.Day))/7
	return fmt.Sprintf("%04d-W%02d", weekYear, week), nil
}

// Range returns a lazy, restartable sequence of date strings from `from`
// to `to` inclusive. Fails if from > to.
func Range(from, to string) (iter.Seq[string], error) {
	fc, err := Parse(from, "from")
	if err != nil {
		return nil, err
	}
	tc, err := Parse(to, "to")
	if err != nil {
		return nil, err
	}
	start := DaysFromCivil(fc.Year, fc.Month, fc.Day)
	end := DaysFromCivil(tc.Year, tc.Month, tc.Day)
	if start > end {
		return nil, errors.NewUsageError("Invalid range: from > to")
	}
	return func(yield func(string) bool) {
		for cur := start; cur <= end; cur++ {
			if !yield(CivilFromDays(cur).String()) {
				return
			}
		}
	}, nil
}

// RangeSlice materializes Range into a slice.
func RangeSlice(from, to string) ([]string, error) {
	seq, err := Range(from, to)
	if err != nil {
		return nil, err
	}
	var out []string
	for d := range seq {
		out = append(out, d)
	}
	return out, nil
}

// Today returns the current UTC wall-clock date. This is the only
// non-pure operation in the package; callers should prefer an injected
// "today" for deterministic output.
func Today() string {
	t := time.Now().UTC()
	return Civil{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}.String()
}
