package schedule

import "encoding/json"

// Source records where a merged event came from.
type Source string

const (
	SourceNone     Source = ""
	SourceSchedule Source = "schedule"
	SourceDirect   Source = "direct"
)

// Split marks which side of a direct event a schedule segment survived on.
type Split string

const (
	SplitNone   Split = ""
	SplitBefore Split = "before"
	SplitAfter  Split = "after"
)

// EventInstance is one concrete occurrence of an event on a weekday.
// Start and End are minutes since midnight. Instances are values: every
// transform returns a new instance and leaves its input untouched.
type EventInstance struct {
	Title         string
	Type          string
	Sub           string
	Day           int
	Start         int
	End           int
	Overwriteable bool
	Source        Source
	Split         Split

	// OriginalIdx is the position of the template this instance was
	// expanded from, or -1 for events that did not come from a template.
	OriginalIdx int
	// DirectIndex is the position of a direct event in the calendar
	// store, or -1.
	DirectIndex int
}

// Minutes returns the length of the instance.
func (e EventInstance) Minutes() int {
	return e.End - e.Start
}

// Overlaps reports whether two instances share time on the same day.
func (e EventInstance) Overlaps(other EventInstance) bool {
	return e.Day == other.Day && RangesOverlap(e.Start, e.End, other.Start, other.End)
}

// WithSpan returns a copy of e covering [start, end).
func (e EventInstance) WithSpan(start, end int) EventInstance {
	e.Start = start
	e.End = end
	return e
}

// WithSource returns a copy of e tagged with s.
func (e EventInstance) WithSource(s Source) EventInstance {
	e.Source = s
	return e
}

// WithSplit returns a copy of e tagged with s.
func (e EventInstance) WithSplit(s Split) EventInstance {
	e.Split = s
	return e
}

type instanceJSON struct {
	Title         string `json:"title"`
	Type          string `json:"type"`
	Sub           string `json:"sub,omitempty"`
	Day           int    `json:"day"`
	Start         string `json:"start"`
	End           string `json:"end"`
	Overwriteable bool   `json:"overwriteable"`
	Source        Source `json:"_source,omitempty"`
	Split         Split  `json:"_split,omitempty"`
	OriginalIdx   *int   `json:"_original_idx,omitempty"`
	DirectIndex   *int   `json:"_direct_index,omitempty"`
}

func (e EventInstance) MarshalJSON() ([]byte, error) {
	out := instanceJSON{
		Title:         e.Title,
		Type:          e.Type,
		Sub:           e.Sub,
		Day:           e.Day,
		Start:         FormatTime(e.Start),
		End:           FormatTime(e.End),
		Overwriteable: e.Overwriteable,
		Source:        e.Source,
		Split:         e.Split,
	}
	if e.OriginalIdx >= 0 {
		idx := e.OriginalIdx
		out.OriginalIdx = &idx
	}
	if e.DirectIndex >= 0 {
		idx := e.DirectIndex
		out.DirectIndex = &idx
	}
	return json.Marshal(out)
}

func (e *EventInstance) UnmarshalJSON(data []byte) error {
	var in instanceJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*e = EventInstance{
		Title:         in.Title,
		Type:          in.Type,
		Sub:           in.Sub,
		Day:           in.Day,
		Start:         TimeToMinutes(in.Start),
		End:           TimeToMinutes(in.End),
		Overwriteable: in.Overwriteable,
		Source:        in.Source,
		Split:         in.Split,
		OriginalIdx:   -1,
		DirectIndex:   -1,
	}
	if in.OriginalIdx != nil {
		e.OriginalIdx = *in.OriginalIdx
	}
	if in.DirectIndex != nil {
		e.DirectIndex = *in.DirectIndex
	}
	return nil
}
