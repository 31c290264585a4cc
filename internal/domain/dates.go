package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a date string cannot be parsed
var ErrInvalidDate = errors.New("invalid date")

// NormalizeDate truncates t to local midnight of its calendar day
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the
// calendar day at local midnight. For timestamps the day is taken in the
// timestamp's own offset, so "2026-10-19T00:00:00Z" is always October 19.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}

	if t, err := time.ParseInLocation(DateFormat, s, time.Local); err == nil {
		return t, nil
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return NormalizeDate(t), nil
		}
	}

	return time.Time{}, ErrInvalidDate
}

// FormatDate renders the calendar day as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// IsWeekend reports whether t falls on Saturday or Sunday
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
