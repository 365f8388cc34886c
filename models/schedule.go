package models

import (
	"fmt"
	"strings"
	"time"
)

// DaysOfWeek lists subscription days in lower case, monday first.
var DaysOfWeek = []string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

func IsValidDay(day string) bool {
	_, ok := weekdays[strings.ToLower(day)]
	return ok
}

// DayName returns the subscription day name of t.
func DayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// ParseClock parses an HH:MM delivery time.
func ParseClock(clock string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid delivery time %q: %w", clock, err)
	}
	return t.Hour(), t.Minute(), nil
}

// NextDelivery returns the first occurrence of day at clock strictly after now, in now's location.
func NextDelivery(day, clock string, now time.Time) (time.Time, error) {
	wd, ok := weekdays[strings.ToLower(day)]
	if !ok {
		return time.Time{}, fmt.Errorf("invalid day of week %q", day)
	}
	hour, minute, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}

	offset := (int(wd) - int(now.Weekday()) + 7) % 7
	next := time.Date(now.Year(), now.Month(), now.Day()+offset, hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 7)
	}
	return next, nil
}
