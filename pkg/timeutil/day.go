// Package timeutil holds the calendar and duration helpers shared by the CLI
// and the TUI.
package timeutil

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/dayplan/pkg/task"
)

// Today is the local calendar day of now.
func Today(now time.Time) string {
	return task.FormatDate(now)
}

// ShiftDay moves a YYYY-MM-DD date by days. Invalid input is returned as is.
func ShiftDay(date string, days int) string {
	d, err := task.ParseDate(date)
	if err != nil {
		return date
	}
	return task.FormatDate(d.AddDate(0, 0, days))
}

// ResolveDay accepts "today", "tomorrow", "yesterday", a signed offset such
// as "+2" or "-1", YYYY-MM-DD, or M/D in the current year.
func ResolveDay(input string, now time.Time) (string, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	today := Today(now)
	switch s {
	case "", "today":
		return today, nil
	case "tomorrow":
		return ShiftDay(today, 1), nil
	case "yesterday":
		return ShiftDay(today, -1), nil
	}
	if s[0] == '+' || s[0] == '-' {
		var n int
		if _, err := fmt.Sscanf(s, "%d", &n); err == nil {
			return ShiftDay(today, n), nil
		}
	}
	if d, err := task.ParseDate(s); err == nil {
		return task.FormatDate(d), nil
	}
	if d, err := time.ParseInLocation("1/2", s, time.Local); err == nil {
		return task.FormatDate(time.Date(now.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.Local)), nil
	}
	return "", fmt.Errorf("unrecognized date %q", input)
}

// Weekday returns the short Chinese weekday label for a date.
func Weekday(date string) string {
	d, err := task.ParseDate(date)
	if err != nil {
		return ""
	}
	return [...]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}[d.Weekday()]
}

// MonthDays returns the first day of date's month and the number of days in
// it.
func MonthDays(date string) (time.Time, int) {
	d, err := task.ParseDate(date)
	if err != nil {
		d = time.Now()
	}
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.Local)
	return first, first.AddDate(0, 1, -1).Day()
}
