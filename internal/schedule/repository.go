package schedule

import "context"

// ScheduleRepository stores schedule documents by filename.
// Missing schedules and template indexes yield errors wrapping ErrNotFound.
type ScheduleRepository interface {
	// ListSchedules returns the stored schedule filenames, sorted.
	ListSchedules(ctx context.Context) ([]string, error)

	// LoadSchedule reads and validates a schedule. A schedule without
	// color mappings is migrated and written back before returning.
	LoadSchedule(ctx context.Context, name string) (*Schedule, error)

	// SaveSchedule validates and writes a schedule, returning the
	// sanitized filename it was stored under.
	SaveSchedule(ctx context.Context, name string, s *Schedule) (string, error)

	// DeleteSchedule removes a schedule file.
	DeleteSchedule(ctx context.Context, name string) error

	// ScheduleExists reports whether a schedule file is present.
	ScheduleExists(ctx context.Context, name string) (bool, error)

	// AddEvent appends a template and returns its index.
	AddEvent(ctx context.Context, name string, t EventTemplate) (int, error)

	// UpdateEvent replaces the template at idx.
	UpdateEvent(ctx context.Context, name string, idx int, t EventTemplate) error

	// DeleteEvent removes the template at idx.
	DeleteEvent(ctx context.Context, name string, idx int) error

	// UpdateColorMappings replaces the type to palette-name mapping.
	UpdateColorMappings(ctx context.Context, name string, mappings map[string]string) error
}

// StoredDirectEvent is a direct event together with its position in the
// calendar store, which is how it is updated and deleted.
type StoredDirectEvent struct {
	DirectEvent
	Index int `json:"_direct_index"`
}

// Instance converts the stored event into an EventInstance.
func (s StoredDirectEvent) Instance() EventInstance {
	return s.DirectEvent.Instance(s.Index)
}

// CalendarConfig is the full calendar document: date-range mappings
// onto schedules and one-off events.
type CalendarConfig struct {
	Entries      []CalendarEntry `json:"entries"`
	DirectEvents []DirectEvent   `json:"direct_events"`
}

// CalendarRepository stores calendar entries and direct events, both
// addressed by position. Out-of-range positions yield ErrNotFound.
type CalendarRepository interface {
	// LoadCalendarConfig returns every entry and direct event.
	LoadCalendarConfig(ctx context.Context) (*CalendarConfig, error)

	// SaveCalendarConfig replaces the stored calendar with cfg.
	SaveCalendarConfig(ctx context.Context, cfg *CalendarConfig) error

	// AddEntry stores a new entry and returns its index.
	// Returns a *RangeError if it overlaps an existing entry.
	AddEntry(ctx context.Context, e CalendarEntry) (int, error)

	// UpdateEntry replaces the entry at idx.
	UpdateEntry(ctx context.Context, idx int, e CalendarEntry) error

	// DeleteEntry removes the entry at idx.
	DeleteEntry(ctx context.Context, idx int) error

	// RemoveEntriesForSchedule deletes every entry pointing at filename
	// and returns how many were removed.
	RemoveEntriesForSchedule(ctx context.Context, filename string) (int, error)

	// ScheduleForDate returns the schedule mapped onto date, or "".
	ScheduleForDate(ctx context.Context, date string) (string, error)

	// AddDirectEvent stores a direct event and returns its index.
	AddDirectEvent(ctx context.Context, d DirectEvent) (int, error)

	// UpdateDirectEvent replaces the direct event at idx.
	UpdateDirectEvent(ctx context.Context, idx int, d DirectEvent) error

	// DeleteDirectEvent removes the direct event at idx.
	DeleteDirectEvent(ctx context.Context, idx int) error

	// DirectEventsForDate returns the direct events on date.
	DirectEventsForDate(ctx context.Context, date string) ([]StoredDirectEvent, error)

	// DirectEventsForRange groups the direct events in [start, end] by date.
	DirectEventsForRange(ctx context.Context, start, end string) (map[string][]StoredDirectEvent, error)

	// Close releases any resources held by the repository.
	Close() error
}
