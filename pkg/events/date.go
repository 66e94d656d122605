package events

import (
	"strconv"
	"strings"
	"time"
)

var germanWeekdays = [...]string{
	time.Sunday:    "Sonntag",
	time.Monday:    "Montag",
	time.Tuesday:   "Dienstag",
	time.Wednesday: "Mittwoch",
	time.Thursday:  "Donnerstag",
	time.Friday:    "Freitag",
	time.Saturday:  "Samstag",
}

// ParseDate parses DD.MM.YY or DD.MM.YYYY. Two-digit years are in the 2000s.
func ParseDate(s string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return time.Time{}, false
		}
		nums[i] = n
	}
	day, month, year := nums[0], nums[1], nums[2]
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// Weekday returns the German weekday name of date, or empty if it does not parse.
func Weekday(date string) string {
	t, ok := ParseDate(date)
	if !ok {
		return ""
	}
	return germanWeekdays[t.Weekday()]
}
