package utils

import "time"

const DayKeyLayout = "2006-01-02"

// StartOfDay truncates t to midnight UTC. Every calendar comparison in the
// availability core happens at day granularity in UTC.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayRange returns the half-open [start, end) interval covering the calendar
// day that contains t.
func DayRange(t time.Time) (time.Time, time.Time) {
	start := StartOfDay(t)
	return start, start.AddDate(0, 0, 1)
}

// DayKey renders t as its YYYY-MM-DD calendar day in UTC.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayKeyLayout)
}

// ParseDayKey parses a YYYY-MM-DD string into its UTC midnight.
func ParseDayKey(s string) (time.Time, error) {
	return time.ParseInLocation(DayKeyLayout, s, time.UTC)
}

// MonthRange returns the half-open [first, afterLast) interval covering the
// whole month.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, 0)
}

// DaysInMonth returns the number of calendar days in the month.
func DaysInMonth(year int, month time.Month) int {
	first, afterLast := MonthRange(year, month)
	return int(afterLast.Sub(first).Hours() / 24)
}
