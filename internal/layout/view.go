// Package layout turns a week of event instances into drawing
// instructions for a single landscape page.
package layout

import (
	"errors"
	"fmt"
	"slices"

	"github.com/brendondgr/Mango-Apps/internal/schedule"
)

// View errors.
var (
	ErrInvalidHourWindow = errors.New("start hour must be before end hour, within 0-24")
	ErrInvalidViewDay    = errors.New("visible days must be between 0 (Mon) and 6 (Sun)")
)

const (
	// HoursPerDay is the default end of the visible window.
	HoursPerDay = 24
	// DaysPerWeek is the number of weekday columns in a full view.
	DaysPerWeek = 7
)

// View is the visible part of the week: an hour window, a set of weekday
// columns and the event types left out.
type View struct {
	StartHour int      `json:"startHour"`
	EndHour   int      `json:"endHour"`
	Days      []int    `json:"daysRange"`
	Hidden    []string `json:"hiddenCategories"`
}

// Normalize fills in defaults: a zero EndHour becomes 24 and an empty
// day set becomes all seven days. Days are sorted and deduplicated.
func (v View) Normalize() View {
	out := View{
		StartHour: v.StartHour,
		EndHour:   v.EndHour,
		Hidden:    slices.Clone(v.Hidden),
	}
	if out.EndHour == 0 {
		out.EndHour = HoursPerDay
	}
	if len(v.Days) == 0 {
		out.Days = []int{0, 1, 2, 3, 4, 5, 6}
	} else {
		out.Days = slices.Clone(v.Days)
		slices.Sort(out.Days)
		out.Days = slices.Compact(out.Days)
	}
	return out
}

// Validate rejects views that leave no rows or no columns to draw.
func (v View) Validate() error {
	if v.StartHour < 0 || v.EndHour > HoursPerDay || v.StartHour >= v.EndHour {
		return fmt.Errorf("%w: got %d-%d", ErrInvalidHourWindow, v.StartHour, v.EndHour)
	}
	for _, d := range v.Days {
		if d < 0 || d >= DaysPerWeek {
			return fmt.Errorf("%w: got %d", ErrInvalidViewDay, d)
		}
	}
	return nil
}

// NumHours returns the number of hour rows.
func (v View) NumHours() int {
	return v.EndHour - v.StartHour
}

func (v View) hidden(eventType string) bool {
	return slices.Contains(v.Hidden, eventType)
}

// Filter drops hidden types, days outside the view and events wholly
// outside the hour window, and clips the rest to the window.
// The input slice is not modified.
func Filter(events []schedule.EventInstance, v View) []schedule.EventInstance {
	windowStart := v.StartHour * 60
	windowEnd := v.EndHour * 60
	if v.EndHour == 0 {
		windowEnd = HoursPerDay * 60
	}

	var out []schedule.EventInstance
	for _, e := range events {
		if v.hidden(e.Type) {
			continue
		}
		if len(v.Days) > 0 && !slices.Contains(v.Days, e.Day) {
			continue
		}
		if e.End <= windowStart || e.Start >= windowEnd {
			continue
		}
		out = append(out, e.WithSpan(max(e.Start, windowStart), min(e.End, windowEnd)))
	}
	return out
}
