package planner

import (
	"math"
	"time"
)

// DateLayout is the date-only wire format used throughout the planner.
const DateLayout = "2006-01-02"

// Normalize truncates a time to midnight UTC. All planner arithmetic is
// date-only; normalizing first keeps day differences exact.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a time as a date-only string.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a date-only string to midnight UTC. Invalid input yields
// the zero time and false.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// AddDays offsets a date by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DaysBetween returns the calendar-day difference to - from, rounding
// partial days up. Negative when to precedes from.
func DaysBetween(from, to time.Time) int {
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}
