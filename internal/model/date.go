package model

import (
	"time"
)

// DateLayout is the ISO calendar date format used everywhere a date is shown or stored
const DateLayout = "2006-01-02"

// DateOf returns the calendar date of t (in t's location) as UTC midnight.
// Calendar dates are kept in UTC so adding days never crosses a DST boundary.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current local calendar date
func Today() time.Time {
	return DateOf(time.Now())
}

// ParseDate parses an ISO calendar date
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// FormatDate formats a calendar date as ISO
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// AddDays shifts a calendar date by n days
func AddDays(d time.Time, n int) time.Time {
	return d.AddDate(0, 0, n)
}
