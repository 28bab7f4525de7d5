package utils

import (
	"math"
	"regexp"
	"time"
)

const DateLayout = "2006-01-02"

var clockRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// DateKey returns the UTC calendar day of t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate accepts YYYY-MM-DD or a full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// DayCount counts the days from start to end, both included, and never
// less than one. ok is false when either date is missing or unreadable;
// callers show nothing in that case.
func DayCount(start, end string) (days int, ok bool) {
	s, okS := ParseDate(start)
	e, okE := ParseDate(end)
	if !okS || !okE {
		return 0, false
	}
	n := int(math.Ceil(e.Sub(s).Hours()/24)) + 1
	if n < 1 {
		n = 1
	}
	return n, true
}

// StartOfWeek returns the Monday 00:00 UTC of t's week.
func StartOfWeek(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, time.UTC)
}

// WeekDays returns the seven date keys Monday..Sunday of t's week.
func WeekDays(t time.Time) []string {
	start := StartOfWeek(t)
	days := make([]string, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i).Format(DateLayout)
	}
	return days
}

// FirstDayOfISOWeek returns the Monday of the given ISO week.
func FirstDayOfISOWeek(year, week int) time.Time {
	date := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	isoYear, isoWeek := date.ISOWeek()

	for date.Weekday() != time.Monday {
		date = date.AddDate(0, 0, -1)
		isoYear, isoWeek = date.ISOWeek()
	}

	for isoYear < year {
		date = date.AddDate(0, 0, 7)
		isoYear, isoWeek = date.ISOWeek()
	}

	for isoWeek < week {
		date = date.AddDate(0, 0, 7)
		isoYear, isoWeek = date.ISOWeek()
	}

	return date
}

// IsClock reports whether s is a 24h HH:MM time.
func IsClock(s string) bool {
	return clockRe.MatchString(s)
}
