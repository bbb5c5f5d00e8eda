package schedule

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EventBase holds the fields shared by every event template shape.
type EventBase struct {
	Title         string
	Type          string
	Sub           string
	Overwriteable bool
}

// Base returns the shared fields of a template.
func (b EventBase) Base() EventBase {
	return b
}

// EventTemplate is a recurring commitment in a schedule. It is either a
// LegacyEventTemplate or a TimestampedEventTemplate.
type EventTemplate interface {
	Base() EventBase
	Validate() error
	isEventTemplate()
}

// DaySpec is a stored day value: a single day or a list of days.
// Days are 0..6 with Monday=0; 7 is accepted as legacy Sunday.
type DaySpec struct {
	days []int
	list bool
}

// SingleDay returns a DaySpec holding one day.
func SingleDay(d int) DaySpec {
	return DaySpec{days: []int{d}}
}

// DayList returns a DaySpec that serializes as a list.
func DayList(days ...int) DaySpec {
	return DaySpec{days: append([]int(nil), days...), list: true}
}

// Values returns a copy of the stored days.
func (d DaySpec) Values() []int {
	return append([]int(nil), d.days...)
}

// IsList reports whether the day was stored as a list.
func (d DaySpec) IsList() bool {
	return d.list
}

// Validate checks every day value and rejects empty lists.
func (d DaySpec) Validate() error {
	if len(d.days) == 0 {
		if d.list {
			return invalid("day", "day list cannot be empty")
		}
		return invalid("day", "missing day")
	}
	for _, v := range d.days {
		if _, err := NormalizeDay(v); err != nil {
			return &ValidationError{Field: "day", Msg: fmt.Sprintf("day %d must be between 0 (Mon) and 6 (Sun)", v), Err: err}
		}
	}
	return nil
}

func (d DaySpec) MarshalJSON() ([]byte, error) {
	if !d.list && len(d.days) == 1 {
		return json.Marshal(d.days[0])
	}
	if d.days == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(d.days)
}

func (d *DaySpec) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return invalidDay()
	}
	var single int
	if err := json.Unmarshal(data, &single); err == nil {
		*d = SingleDay(single)
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return invalidDay()
	}
	many := make([]int, 0, len(items))
	for _, item := range items {
		var v int
		if isNull(item) {
			return invalidDay()
		}
		if err := json.Unmarshal(item, &v); err != nil {
			return invalidDay()
		}
		many = append(many, v)
	}
	*d = DayList(many...)
	return nil
}

func invalidDay() error {
	return &ValidationError{Field: "day", Msg: "day must be an integer or a list of integers between 0 (Mon) and 6 (Sun)", Err: ErrInvalidDay}
}

// LegacyEventTemplate places one time range on one or more days.
type LegacyEventTemplate struct {
	EventBase
	Day   DaySpec
	Start string
	End   string
}

func (LegacyEventTemplate) isEventTemplate() {}

// Validate checks required fields, day values and the time range.
func (t LegacyEventTemplate) Validate() error {
	if err := t.EventBase.validate(); err != nil {
		return err
	}
	if err := t.Day.Validate(); err != nil {
		return err
	}
	return validateTimeRange(t.Start, t.End)
}

// Timestamp is one {day, start, end} slot of a TimestampedEventTemplate.
type Timestamp struct {
	Day   DaySpec `json:"day"`
	Start string  `json:"start"`
	End   string  `json:"end"`
}

// Validate checks the day values and the time range of the slot.
func (ts Timestamp) Validate() error {
	if err := ts.Day.Validate(); err != nil {
		return err
	}
	return validateTimeRange(ts.Start, ts.End)
}

// TimestampedEventTemplate lists independent time slots for one event.
type TimestampedEventTemplate struct {
	EventBase
	Timestamps []Timestamp
}

func (TimestampedEventTemplate) isEventTemplate() {}

// Validate checks required fields and every timestamp.
func (t TimestampedEventTemplate) Validate() error {
	if err := t.EventBase.validate(); err != nil {
		return err
	}
	for i, ts := range t.Timestamps {
		if err := ts.Validate(); err != nil {
			return wrapIndexed("timestamp", i, err)
		}
	}
	return nil
}

func (b EventBase) validate() error {
	if b.Title == "" {
		return invalid("title", "missing field 'title'")
	}
	if b.Type == "" {
		return invalid("type", "missing field 'type'")
	}
	return nil
}

func validateTimeRange(start, end string) error {
	if !ValidTime(start) {
		return &ValidationError{Field: "start", Msg: fmt.Sprintf("invalid start time format: %s", start), Err: ErrInvalidTimeFormat}
	}
	if !ValidTime(end) {
		return &ValidationError{Field: "end", Msg: fmt.Sprintf("invalid end time format: %s", end), Err: ErrInvalidTimeFormat}
	}
	if TimeToMinutes(start) >= TimeToMinutes(end) {
		return &ValidationError{Field: "end", Msg: fmt.Sprintf("start %s must be before end %s", start, end), Err: ErrEndBeforeStart}
	}
	return nil
}

// wrapIndexed prefixes a validation error with its position in a list.
func wrapIndexed(what string, i int, err error) error {
	if ve, ok := err.(*ValidationError); ok {
		return &ValidationError{
			Field: fmt.Sprintf("%s #%d: %s", what, i, ve.Field),
			Msg:   ve.Msg,
			Err:   ve.Err,
		}
	}
	return fmt.Errorf("%s #%d: %w", what, i, err)
}

// legacyJSON and timestampedJSON are the stored shapes of the two
// template variants.
type legacyJSON struct {
	Title         string  `json:"title"`
	Type          string  `json:"type"`
	Sub           string  `json:"sub,omitempty"`
	Overwriteable bool    `json:"overwriteable,omitempty"`
	Day           DaySpec `json:"day"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
}

type timestampedJSON struct {
	Title         string      `json:"title"`
	Type          string      `json:"type"`
	Sub           string      `json:"sub,omitempty"`
	Overwriteable bool        `json:"overwriteable,omitempty"`
	Timestamps    []Timestamp `json:"timestamps"`
}

// MarshalTemplate encodes a template in its stored JSON shape.
func MarshalTemplate(t EventTemplate) ([]byte, error) {
	switch v := t.(type) {
	case LegacyEventTemplate:
		return json.Marshal(legacyJSON{
			Title:         v.Title,
			Type:          v.Type,
			Sub:           v.Sub,
			Overwriteable: v.Overwriteable,
			Day:           v.Day,
			Start:         v.Start,
			End:           v.End,
		})
	case TimestampedEventTemplate:
		ts := v.Timestamps
		if ts == nil {
			ts = []Timestamp{}
		}
		return json.Marshal(timestampedJSON{
			Title:         v.Title,
			Type:          v.Type,
			Sub:           v.Sub,
			Overwriteable: v.Overwriteable,
			Timestamps:    ts,
		})
	default:
		return nil, fmt.Errorf("unknown event template %T", t)
	}
}

// DecodeTemplate parses and validates one stored event template.
func DecodeTemplate(data []byte) (EventTemplate, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil, invalid("", "event must be a JSON object")
	}

	var base EventBase
	if raw, ok := fields["overwriteable"]; ok {
		if err := json.Unmarshal(raw, &base.Overwriteable); err != nil || isNull(raw) {
			return nil, invalid("overwriteable", "'overwriteable' must be a boolean")
		}
	}
	if raw, ok := fields["sub"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &base.Sub); err != nil {
			return nil, invalid("sub", "'sub' must be a string")
		}
	}

	if rawTS, ok := fields["timestamps"]; ok {
		if err := decodeStrings(fields, map[string]*string{"title": &base.Title, "type": &base.Type}); err != nil {
			return nil, err
		}
		var items []json.RawMessage
		if err := json.Unmarshal(rawTS, &items); err != nil || items == nil {
			return nil, invalid("timestamps", "'timestamps' must be a list")
		}
		tmpl := TimestampedEventTemplate{EventBase: base, Timestamps: make([]Timestamp, 0, len(items))}
		for i, item := range items {
			ts, err := decodeTimestamp(item)
			if err != nil {
				return nil, wrapIndexed("timestamp", i, err)
			}
			tmpl.Timestamps = append(tmpl.Timestamps, ts)
		}
		if err := tmpl.Validate(); err != nil {
			return nil, err
		}
		return tmpl, nil
	}

	if _, ok := fields["day"]; !ok {
		return nil, invalid("day", "missing field 'day'")
	}
	tmpl := LegacyEventTemplate{EventBase: base}
	if err := decodeStrings(fields, map[string]*string{
		"start": &tmpl.Start,
		"end":   &tmpl.End,
		"title": &tmpl.Title,
		"type":  &tmpl.Type,
	}); err != nil {
		return nil, err
	}
	if isNull(fields["day"]) {
		return nil, invalidDay()
	}
	if err := json.Unmarshal(fields["day"], &tmpl.Day); err != nil {
		return nil, err
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func decodeTimestamp(data []byte) (Timestamp, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return Timestamp{}, invalid("", "timestamp must be a JSON object")
	}
	if _, ok := fields["day"]; !ok {
		return Timestamp{}, invalid("day", "missing field 'day'")
	}
	var ts Timestamp
	if err := decodeStrings(fields, map[string]*string{"start": &ts.Start, "end": &ts.End}); err != nil {
		return Timestamp{}, err
	}
	if isNull(fields["day"]) {
		return Timestamp{}, invalidDay()
	}
	if err := json.Unmarshal(fields["day"], &ts.Day); err != nil {
		return Timestamp{}, err
	}
	return ts, nil
}

// decodeStrings fills every target from fields, failing on the first
// missing or non-string value in a fixed key order.
func decodeStrings(fields map[string]json.RawMessage, targets map[string]*string) error {
	for _, key := range []string{"day", "start", "end", "title", "type"} {
		dst, ok := targets[key]
		if !ok {
			continue
		}
		raw, ok := fields[key]
		if !ok {
			return invalid(key, "missing field '%s'", key)
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return invalid(key, "'%s' must be a string", key)
		}
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
