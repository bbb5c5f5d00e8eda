// Package schedule defines the calendar domain: event templates, their
// expansion into instances, day merging and duration statistics.
package schedule

import (
	"encoding/json"
	"fmt"
	"maps"
	"sort"
	"strings"

	"github.com/brendondgr/Mango-Apps/internal/palette"
)

// Schedule is a recurring weekly plan.
type Schedule struct {
	Name        string
	Description string
	Events      []EventTemplate
	// ColorMappings maps event type to palette name. nil means the
	// schedule predates color mappings and still needs migrating.
	ColorMappings map[string]string
}

// Validate checks the whole schedule as it would be stored.
func (s *Schedule) Validate() error {
	if s.Name == "" {
		return invalid("name", "missing required key: 'name'")
	}
	for i, e := range s.Events {
		if e == nil {
			return invalid(fmt.Sprintf("event #%d", i), "event must be a JSON object")
		}
		if err := e.Validate(); err != nil {
			return wrapIndexed("event", i, err)
		}
	}
	return ValidateColorMappings(s.ColorMappings)
}

// ValidateColorMappings rejects mappings onto names outside the palette.
func ValidateColorMappings(m map[string]string) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, typ := range keys {
		if !palette.Valid(m[typ]) {
			return invalid("color_mappings", "invalid color '%s' for type '%s'. Valid colors: %s",
				m[typ], typ, strings.Join(palette.Names(), ", "))
		}
	}
	return nil
}

// Instances expands the schedule's templates.
func (s *Schedule) Instances() []EventInstance {
	return Expand(s.Events)
}

// Types returns the sorted set of template types; an empty type counts
// as "other".
func (s *Schedule) Types() []string {
	seen := make(map[string]bool)
	for _, e := range s.Events {
		seen[typeOrOther(e.Base().Type)] = true
	}
	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Colors returns the class scheme for the schedule's types.
func (s *Schedule) Colors() palette.Scheme {
	return palette.Generate(s.Types(), s.ColorMappings)
}

// Clone returns a copy that shares no mutable state with s.
func (s *Schedule) Clone() *Schedule {
	out := &Schedule{
		Name:        s.Name,
		Description: s.Description,
		Events:      append([]EventTemplate(nil), s.Events...),
	}
	if s.ColorMappings != nil {
		out.ColorMappings = maps.Clone(s.ColorMappings)
	}
	return out
}

// WithEvent returns a copy with t appended.
func (s *Schedule) WithEvent(t EventTemplate) *Schedule {
	out := s.Clone()
	out.Events = append(out.Events, t)
	return out
}

// WithEventAt returns a copy with the template at idx replaced.
func (s *Schedule) WithEventAt(idx int, t EventTemplate) (*Schedule, error) {
	if idx < 0 || idx >= len(s.Events) {
		return nil, fmt.Errorf("%w: event index %d out of range", ErrNotFound, idx)
	}
	out := s.Clone()
	out.Events[idx] = t
	return out, nil
}

// WithoutEvent returns a copy with the template at idx removed.
func (s *Schedule) WithoutEvent(idx int) (*Schedule, error) {
	if idx < 0 || idx >= len(s.Events) {
		return nil, fmt.Errorf("%w: event index %d out of range", ErrNotFound, idx)
	}
	out := s.Clone()
	out.Events = append(out.Events[:idx], out.Events[idx+1:]...)
	return out, nil
}

type scheduleJSON struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Events      []json.RawMessage `json:"events"`
	// A pointer keeps an empty but present mapping in the output.
	ColorMappings *map[string]string `json:"color_mappings,omitempty"`
}

func (s *Schedule) MarshalJSON() ([]byte, error) {
	out := scheduleJSON{
		Name:        s.Name,
		Description: s.Description,
		Events:      make([]json.RawMessage, 0, len(s.Events)),
	}
	if s.ColorMappings != nil {
		out.ColorMappings = &s.ColorMappings
	}
	for _, e := range s.Events {
		raw, err := MarshalTemplate(e)
		if err != nil {
			return nil, err
		}
		out.Events = append(out.Events, raw)
	}
	return json.Marshal(out)
}

// DecodeSchedule parses and validates a stored schedule document.
func DecodeSchedule(data []byte) (*Schedule, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil, invalid("", "root must be a JSON object")
	}

	s := &Schedule{}
	for _, key := range []string{"name", "events"} {
		if _, ok := fields[key]; !ok {
			return nil, invalid(key, "missing required key: '%s'", key)
		}
	}
	if err := json.Unmarshal(fields["name"], &s.Name); err != nil {
		return nil, invalid("name", "'name' must be a string")
	}
	if raw, ok := fields["description"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &s.Description); err != nil {
			return nil, invalid("description", "'description' must be a string")
		}
	}

	var events []json.RawMessage
	if err := json.Unmarshal(fields["events"], &events); err != nil || events == nil {
		return nil, invalid("events", "'events' must be a list")
	}
	s.Events = make([]EventTemplate, 0, len(events))
	for i, raw := range events {
		t, err := DecodeTemplate(raw)
		if err != nil {
			return nil, wrapIndexed("event", i, err)
		}
		s.Events = append(s.Events, t)
	}

	if raw, ok := fields["color_mappings"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &s.ColorMappings); err != nil {
			return nil, invalid("color_mappings", "'color_mappings' must be an object of strings")
		}
		if s.ColorMappings == nil {
			s.ColorMappings = map[string]string{}
		}
		if err := ValidateColorMappings(s.ColorMappings); err != nil {
			return nil, err
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
