package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout of calendar date keys ("YYYY-MM-DD").
const DateLayout = "2006-01-02"

// StartOfDay returns midnight (00:00:00) of the given day in the same timezone
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of the given day (23:59:59.999999999)
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfWeek returns midnight of the first day of the week containing t.
// weekStart is the weekday the week begins on (time.Monday or time.Sunday).
func StartOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	offset := (int(t.Weekday()) - int(weekStart) + 7) % 7
	return StartOfDay(t).AddDate(0, 0, -offset)
}

// EndOfWeek returns the last nanosecond of the week containing t
func EndOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	return StartOfWeek(t, weekStart).AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// DaysInWeek returns the seven consecutive local midnights starting at start.
// AddDate keeps each value on midnight across DST transitions.
func DaysInWeek(start time.Time) []time.Time {
	start = StartOfDay(start)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// WeekKeys returns the date keys of the seven days starting at start
func WeekKeys(start time.Time) []string {
	days := DaysInWeek(start)
	keys := make([]string, len(days))
	for i, d := range days {
		keys[i] = DateKey(d)
	}
	return keys
}

// IsInRange checks if the given time t falls within the range [start, end] (inclusive)
func IsInRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// DateKey formats t as a local calendar key in t's own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateKey returns local midnight of the calendar day named by key.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q (expected YYYY-MM-DD)", key)
	}
	return t, nil
}

// IsDateKey reports whether key is a well-formed YYYY-MM-DD date
func IsDateKey(key string) bool {
	_, err := time.Parse(DateLayout, key)
	return err == nil
}

// ShiftDateKey moves a date key by the given number of days.
func ShiftDateKey(key string, days int, loc *time.Location) (string, error) {
	t, err := ParseDateKey(key, loc)
	if err != nil {
		return "", err
	}
	return DateKey(t.AddDate(0, 0, days)), nil
}

// FromMillis converts epoch milliseconds to a time in loc.
func FromMillis(ms int64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(ms).In(loc)
}

// Millis converts t to epoch milliseconds.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// DateKeyFromMillis returns the local calendar key of an epoch-ms instant.
func DateKeyFromMillis(ms int64, loc *time.Location) string {
	return DateKey(FromMillis(ms, loc))
}

// RebaseMillis moves an instant onto the target calendar day, keeping its
// offset from local midnight.
func RebaseMillis(ms int64, targetKey string, loc *time.Location) (int64, error) {
	target, err := ParseDateKey(targetKey, loc)
	if err != nil {
		return 0, err
	}
	t := FromMillis(ms, loc)
	offset := t.Sub(StartOfDay(t))
	return Millis(target.Add(offset)), nil
}

// WeekdayInitial returns the single-letter weekday label used in activity
// charts (S M T W T F S).
func WeekdayInitial(t time.Time) string {
	return t.Weekday().String()[:1]
}

// ParseWeekday parses a week start name. Only monday and sunday are accepted.
func ParseWeekday(name string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "monday":
		return time.Monday, nil
	case "sunday":
		return time.Sunday, nil
	default:
		return time.Monday, fmt.Errorf("invalid week start day %q (use monday or sunday)", name)
	}
}
