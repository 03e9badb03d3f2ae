package calendar

import (
	"regexp"
	"time"
)

// ISODate is the calendar-date layout used across the store and the
// backup snapshot format.
const ISODate = "2006-01-02"

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Today returns the current local calendar date as YYYY-MM-DD.
func Today() string {
	return time.Now().Format(ISODate)
}

// Parse parses a YYYY-MM-DD string into a local midnight time.
func Parse(iso string) (time.Time, error) {
	return time.ParseInLocation(ISODate, iso, time.Local)
}

// IsValidISO reports whether s is a well-formed YYYY-MM-DD calendar date.
func IsValidISO(s string) bool {
	if !isoDatePattern.MatchString(s) {
		return false
	}
	_, err := Parse(s)
	return err == nil
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Sunday || wd == time.Saturday
}

// MonthKey returns the YYYY-MM prefix shared by all dates in t's month.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
