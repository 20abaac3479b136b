package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// DefaultLayout is the default calendar date layout (e.g. 2020/04/06)
const DefaultLayout = "2006/01/02"

// Normalize returns midnight UTC of the calendar date of t in its own location.
// Two times on the same calendar day always normalize to the same value.
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays moves the date by n calendar days
func AddDays(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n)
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// ParseDate parses a date token with the given layout and normalizes it.
// An empty layout falls back to DefaultLayout.
func ParseDate(layout, value string) (time.Time, error) {
	if layout == "" {
		layout = DefaultLayout
	}

	t, err := time.Parse(layout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q for layout %q: %w", value, layout, err)
	}

	return Normalize(t), nil
}

// ParseDateAny parses a date token trying the given layout first, then ISO
// (2006-01-02) and the dotted day-first format
func ParseDateAny(layout, value string) (time.Time, error) {
	formats := []string{layout, "2006-01-02", "2006/01/02", "02.01.2006"}

	for _, format := range formats {
		if format == "" {
			continue
		}
		if t, err := time.Parse(format, strings.TrimSpace(value)); err == nil {
			return Normalize(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// Today returns today's date (normalized)
func Today() time.Time {
	return Normalize(time.Now())
}
