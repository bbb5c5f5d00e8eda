package schedule

import (
	"errors"
	"fmt"

	"github.com/brendondgr/Mango-Apps/internal/dateutil"
)

// CalendarEntry maps an inclusive date range onto a schedule file.
type CalendarEntry struct {
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	ScheduleFilename string `json:"schedule_filename"`
}

// Validate checks the date format, the range order and that a schedule
// is named. Whether the schedule exists is checked by the caller.
func (c CalendarEntry) Validate() error {
	if c.StartDate == "" || c.EndDate == "" || c.ScheduleFilename == "" {
		return invalid("", "start_date, end_date, and schedule_filename required")
	}
	if _, err := dateutil.NewDateRange(c.StartDate, c.EndDate); err != nil {
		if errors.Is(err, dateutil.ErrEndDateBeforeStart) {
			return &RangeError{Msg: "Start date must be before or equal to end date."}
		}
		return &ValidationError{Field: "date", Msg: "Invalid date format. Use YYYY-MM-DD.", Err: err}
	}
	return nil
}

// Contains reports whether date (YYYY-MM-DD) falls inside the entry.
func (c CalendarEntry) Contains(date string) bool {
	return dateutil.DateStringInRange(date, c.StartDate, c.EndDate)
}

// CheckEntryOverlap rejects a candidate whose range touches any existing
// entry. Both ranges are inclusive. exclude is the index being replaced,
// or -1.
func CheckEntryOverlap(existing []CalendarEntry, candidate CalendarEntry, exclude int) error {
	for i, e := range existing {
		if i == exclude {
			continue
		}
		if candidate.StartDate <= e.EndDate && e.StartDate <= candidate.EndDate {
			return &RangeError{
				Msg:           fmt.Sprintf("Date range overlaps with existing entry (%s to %s).", e.StartDate, e.EndDate),
				ConflictStart: e.StartDate,
				ConflictEnd:   e.EndDate,
			}
		}
	}
	return nil
}

// ScheduleForDate returns the schedule of the first entry containing date.
func ScheduleForDate(entries []CalendarEntry, date string) (string, bool) {
	for _, e := range entries {
		if e.Contains(date) {
			return e.ScheduleFilename, true
		}
	}
	return "", false
}
