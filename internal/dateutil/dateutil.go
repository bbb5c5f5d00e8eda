// Package dateutil provides date parsing, range and weekday utilities.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// Layout is the storage format of calendar dates.
const Layout = "2006-01-02"

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
)

// weekdayMap maps weekday names to Monday-based day indexes.
var weekdayMap = map[string]int{
	"monday":    0,
	"tuesday":   1,
	"wednesday": 2,
	"thursday":  3,
	"friday":    4,
	"saturday":  5,
	"sunday":    6,
}

var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DateRange represents a validated, inclusive date range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange creates a new DateRange with validation.
// startDate can be empty (defaults to today) or in YYYY-MM-DD format.
// endDate can be empty (defaults to startDate) or in YYYY-MM-DD format.
// Returns an error if endDate is before startDate.
func NewDateRange(startDate, endDate string) (*DateRange, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}

	var end time.Time
	if endDate == "" {
		end = start
	} else {
		end, err = ParseDate(endDate)
		if err != nil {
			return nil, err
		}
	}

	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}

	return &DateRange{Start: start, End: end}, nil
}

// Dates returns every date in the range as YYYY-MM-DD strings.
func (r *DateRange) Dates() []string {
	var out []string
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		out = append(out, FormatDate(d))
	}
	return out
}

// ParseDate parses a date string in YYYY-MM-DD format.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(Layout)
}

// Today returns today's date as YYYY-MM-DD.
func Today() string {
	return FormatDate(time.Now())
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (monday, sunday time.Time) {
	t = TruncateToDay(t)
	monday = t.AddDate(0, 0, -DayOfWeek(t))
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// MonthRange returns the first and last day of t's month.
func MonthRange(t time.Time) (first, last time.Time) {
	first = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last = first.AddDate(0, 1, -1)
	return first, last
}

// YearRange returns January 1 and December 31 of t's year.
func YearRange(t time.Time) (first, last time.Time) {
	first = time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	last = time.Date(t.Year(), time.December, 31, 0, 0, 0, 0, t.Location())
	return first, last
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayOfWeek returns 0..6 with Monday=0.
func DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// DayName returns the English name of a Monday-based day index.
func DayName(day int) string {
	if day < 0 || day > 6 {
		return ""
	}
	return dayNames[day]
}

// DayShortName returns the three-letter name of a Monday-based day index.
func DayShortName(day int) string {
	name := DayName(day)
	if len(name) < 3 {
		return name
	}
	return name[:3]
}

// DateStringInRange reports whether date lies in [start, end]. All three
// are YYYY-MM-DD strings, which order lexically.
func DateStringInRange(date, start, end string) bool {
	return start <= date && date <= end
}

// FormatForDisplay renders t as "January 5, 2026", or "January 5"
// without the year.
func FormatForDisplay(t time.Time, includeYear bool) string {
	if includeYear {
		return t.Format("January 2, 2006")
	}
	return t.Format("January 2")
}

// ParseDateArg parses a command-line date relative to relativeTo:
//   - Empty string or "today": relativeTo's date
//   - "yesterday", "tomorrow"
//   - "last-week", "next-week": same weekday, -7 / +7 days
//   - Weekday names: that day of relativeTo's Monday-based week
//   - "next-monday" .. "next-sunday": that day of the following week
//   - Absolute date: "2025-01-15"
//
// All inputs are case-insensitive. Past dates are allowed.
func ParseDateArg(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "last-week":
		return today.AddDate(0, 0, -7), nil
	case "next-week":
		return today.AddDate(0, 0, 7), nil
	}

	monday, _ := WeekRange(today)

	if strings.HasPrefix(input, "next-") {
		if day, ok := weekdayMap[strings.TrimPrefix(input, "next-")]; ok {
			return monday.AddDate(0, 0, 7+day), nil
		}
		return time.Time{}, ErrInvalidDateFormat
	}

	if day, ok := weekdayMap[input]; ok {
		return monday.AddDate(0, 0, day), nil
	}

	result, err := time.Parse(Layout, input)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return result, nil
}
