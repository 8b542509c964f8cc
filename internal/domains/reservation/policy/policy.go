// Package policy holds the calendar rules of the restaurant: when it is open and which
// date and time strings are acceptable. Every function is pure and interprets values in
// the application timezone.
package policy

import (
	"regexp"
	"time"

	"tablebook/shared/constant"
	"tablebook/shared/timezone"
)

const (
	ClosedDay = time.Tuesday

	// Minutes after midnight.
	OpeningMinute = 10*60 + 30
	ClosingMinute = 21*60 + 30
)

var (
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// IsClosedDay reports whether date ("YYYY-MM-DD") falls on the weekly closing day.
func IsClosedDay(date string) bool {
	day, err := timezone.Parse(constant.DateFormat, date)
	if err != nil {
		return false
	}

	return day.Weekday() == ClosedDay
}

// IsPast reports whether date and clock (HH:MM) combined lie strictly before now.
func IsPast(date, clock string, now time.Time) bool {
	at, err := timezone.Parse(constant.DateFormat+" "+constant.TimeFormat, date+" "+clock)
	if err != nil {
		return false
	}

	return at.Before(now)
}

// IsWithinBusinessHours reports whether clock (HH:MM) is between opening and last seating, inclusive.
func IsWithinBusinessHours(clock string) bool {
	minute, ok := minuteOfDay(clock)
	if !ok {
		return false
	}

	return minute >= OpeningMinute && minute <= ClosingMinute
}

func IsValidTimeFormat(clock string) bool {
	if !timePattern.MatchString(clock) {
		return false
	}

	_, err := time.Parse(constant.TimeFormat, clock)

	return err == nil
}

func IsValidDateFormat(date string) bool {
	if !datePattern.MatchString(date) {
		return false
	}

	_, err := time.Parse(constant.DateFormat, date)

	return err == nil
}

func minuteOfDay(clock string) (int, bool) {
	if !IsValidTimeFormat(clock) {
		return 0, false
	}

	t, _ := time.Parse(constant.TimeFormat, clock)

	return t.Hour()*60 + t.Minute(), true
}
