package schedule

import (
	"encoding/json"
	"fmt"

	"github.com/brendondgr/Mango-Apps/internal/dateutil"
)

// DefaultType is used for direct events stored without a type.
const DefaultType = "other"

// DirectEvent is a one-off event pinned to a calendar date. It always
// wins over schedule events on that date.
type DirectEvent struct {
	Date  string `json:"date"`
	Title string `json:"title"`
	Type  string `json:"type"`
	Start string `json:"start"`
	End   string `json:"end"`
	Sub   string `json:"sub,omitempty"`
}

// NewDirectEvent builds a validated direct event. An empty type becomes
// DefaultType.
func NewDirectEvent(date, title, typ, start, end, sub string) (DirectEvent, error) {
	d := DirectEvent{Date: date, Title: title, Type: typ, Start: start, End: end, Sub: sub}
	if d.Type == "" {
		d.Type = DefaultType
	}
	if err := d.Validate(); err != nil {
		return DirectEvent{}, err
	}
	return d, nil
}

// Validate checks required fields, the date and the time range.
func (d DirectEvent) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"date", d.Date},
		{"title", d.Title},
		{"start", d.Start},
		{"end", d.End},
	} {
		if f.value == "" {
			return invalid(f.name, "missing required field: %s", f.name)
		}
	}
	if _, err := dateutil.ParseDate(d.Date); err != nil {
		return &ValidationError{Field: "date", Msg: "invalid date format, use YYYY-MM-DD", Err: err}
	}
	if !ValidTime(d.Start) || !ValidTime(d.End) {
		return &ValidationError{Field: "start", Msg: "invalid time format, use HH:MM", Err: ErrInvalidTimeFormat}
	}
	if TimeToMinutes(d.Start) >= TimeToMinutes(d.End) {
		return &ValidationError{Field: "end", Msg: "start time must be before end time", Err: ErrEndBeforeStart}
	}
	return nil
}

// Instance converts the event into an EventInstance for its date.
// index is the event's position in the calendar store.
func (d DirectEvent) Instance(index int) EventInstance {
	day := 0
	if t, err := dateutil.ParseDate(d.Date); err == nil {
		day = dateutil.DayOfWeek(t)
	}
	typ := d.Type
	if typ == "" {
		typ = DefaultType
	}
	return EventInstance{
		Title:       d.Title,
		Type:        typ,
		Sub:         d.Sub,
		Day:         day,
		Start:       TimeToMinutes(d.Start),
		End:         TimeToMinutes(d.End),
		Source:      SourceDirect,
		OriginalIdx: -1,
		DirectIndex: index,
	}
}

// DecodeDirectEvent parses and validates a direct event from JSON.
func DecodeDirectEvent(data []byte) (DirectEvent, error) {
	var d DirectEvent
	if err := json.Unmarshal(data, &d); err != nil {
		return DirectEvent{}, &ValidationError{Msg: "direct event must be a JSON object with string fields", Err: err}
	}
	return NewDirectEvent(d.Date, d.Title, d.Type, d.Start, d.End, d.Sub)
}

// CheckDirectOverlap rejects a direct event that shares time with another
// direct event on the same date. exclude is the index being replaced, or -1.
func CheckDirectOverlap(existing []DirectEvent, candidate DirectEvent, exclude int) error {
	cs, ce := TimeToMinutes(candidate.Start), TimeToMinutes(candidate.End)
	for i, e := range existing {
		if i == exclude || e.Date != candidate.Date {
			continue
		}
		if RangesOverlap(cs, ce, TimeToMinutes(e.Start), TimeToMinutes(e.End)) {
			return &RangeError{
				Msg: fmt.Sprintf("Time range overlaps with direct event %q on %s (%s to %s).",
					e.Title, e.Date, e.Start, e.End),
				ConflictStart: e.Start,
				ConflictEnd:   e.End,
			}
		}
	}
	return nil
}
