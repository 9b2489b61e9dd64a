package utils

import (
	"fmt"
	"time"
)

// All booking arithmetic happens in UTC at 30-minute granularity. Every
// weekday/clock conversion in the codebase goes through this file so the
// rules live in one place.

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"

	// SlotInterval is the fixed step between bookable slot times.
	SlotInterval = 30 * time.Minute
)

// DayOfWeek returns the weekday name ("Monday"...) of t in UTC.
func DayOfWeek(t time.Time) string {
	return t.UTC().Weekday().String()
}

// ParseDate parses a "YYYY-MM-DD" string into a UTC midnight timestamp.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t.UTC(), nil
}

// ParseDateTime parses separate date and clock strings into one UTC timestamp.
func ParseDateTime(date, clock string) (time.Time, error) {
	t, err := time.Parse(DateLayout+" "+ClockLayout, date+" "+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q, expected YYYY-MM-DD and HH:MM", date, clock)
	}
	return t.UTC(), nil
}

// ValidClock reports whether s is a well-formed "HH:MM" clock value.
func ValidClock(s string) bool {
	_, err := time.Parse(ClockLayout, s)
	return err == nil
}

// CombineDayClock anchors an "HH:MM" clock value on day's calendar date (UTC).
func CombineDayClock(day time.Time, clock string) (time.Time, error) {
	c, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM", clock)
	}
	day = day.UTC()
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, time.UTC), nil
}

// WithinWindow reports whether t falls inside [open, close], inclusive at
// both ends.
func WithinWindow(open, close, t time.Time) bool {
	return !t.Before(open) && !t.After(close)
}

// SlotSteps walks [open, close) in SlotInterval steps. The close time itself
// is not a bookable slot: hours 10:00-12:00 yield 10:00, 10:30, 11:00, 11:30.
func SlotSteps(open, close time.Time) []time.Time {
	var steps []time.Time
	for t := open; t.Before(close); t = t.Add(SlotInterval) {
		steps = append(steps, t)
	}
	return steps
}

// Today truncates t to its UTC calendar date.
func Today(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether a and b fall on the same UTC calendar date.
func SameDate(a, b time.Time) bool {
	return Today(a).Equal(Today(b))
}
