// Package calendar combines the schedule and calendar stores into the
// views served by the web API and the CLI.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/brendondgr/Mango-Apps/internal/dateutil"
	"github.com/brendondgr/Mango-Apps/internal/layout"
	"github.com/brendondgr/Mango-Apps/internal/logger"
	"github.com/brendondgr/Mango-Apps/internal/palette"
	"github.com/brendondgr/Mango-Apps/internal/pdf"
	"github.com/brendondgr/Mango-Apps/internal/schedule"
)

// MaxRangeDays caps the length of a range view.
const MaxRangeDays = 732

// Service implements calendar operations on top of the two stores.
type Service struct {
	schedules schedule.ScheduleRepository
	calendar  schedule.CalendarRepository
	names     *NameCache
	log       *log.Logger
}

// New creates a Service. A nil names gets a fresh cache and a nil logger
// discards output.
func New(schedules schedule.ScheduleRepository, cal schedule.CalendarRepository, names *NameCache, l *log.Logger) *Service {
	if names == nil {
		names = NewNameCache(schedules)
	}
	if l == nil {
		l = logger.Discard()
	}
	return &Service{schedules: schedules, calendar: cal, names: names, log: l}
}

// Names returns the schedule name cache.
func (s *Service) Names() *NameCache {
	return s.names
}

// ListSchedules returns the stored schedule filenames.
func (s *Service) ListSchedules(ctx context.Context) ([]string, error) {
	return s.schedules.ListSchedules(ctx)
}

// LoadSchedule returns a stored schedule.
func (s *Service) LoadSchedule(ctx context.Context, name string) (*schedule.Schedule, error) {
	return s.schedules.LoadSchedule(ctx, name)
}

// ScheduleView loads a schedule with its colors, statistics and per-type
// breakdowns.
func (s *Service) ScheduleView(ctx context.Context, name string) (*ScheduleView, error) {
	sched, err := s.schedules.LoadSchedule(ctx, name)
	if err != nil {
		return nil, err
	}

	instances := sched.Instances()
	mappings := sched.ColorMappings
	if mappings == nil {
		mappings = map[string]string{}
	}
	return &ScheduleView{
		Schedule: ScheduleDoc{
			Name:          sched.Name,
			Description:   sched.Description,
			Events:        instances,
			ColorMappings: mappings,
		},
		Colors:     sched.Colors(),
		Stats:      schedule.CalculateStats(instances),
		Breakdowns: schedule.Breakdowns(instances),
	}, nil
}

// SaveSchedule stores a schedule and returns the filename it was saved as.
func (s *Service) SaveSchedule(ctx context.Context, name string, sched *schedule.Schedule) (string, error) {
	saved, err := s.schedules.SaveSchedule(ctx, name, sched)
	if err != nil {
		return "", err
	}
	s.names.Invalidate(saved)
	s.log.Info("schedule saved", "filename", saved, "events", len(sched.Events))
	return saved, nil
}

// DeleteSchedule removes a schedule and every calendar entry mapped onto
// it, returning the number of entries removed.
func (s *Service) DeleteSchedule(ctx context.Context, name string) (int, error) {
	if err := s.schedules.DeleteSchedule(ctx, name); err != nil {
		return 0, err
	}
	s.names.Invalidate(name)

	removed, err := s.calendar.RemoveEntriesForSchedule(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("removing calendar entries: %w", err)
	}
	s.log.Info("schedule deleted", "filename", name, "removed_entries", removed)
	return removed, nil
}

// AddEvent appends a template to a schedule and returns its index.
func (s *Service) AddEvent(ctx context.Context, name string, t schedule.EventTemplate) (int, error) {
	idx, err := s.schedules.AddEvent(ctx, name, t)
	if err != nil {
		return 0, err
	}
	s.log.Debug("event added", "schedule", name, "index", idx)
	return idx, nil
}

// UpdateEvent replaces a template of a schedule.
func (s *Service) UpdateEvent(ctx context.Context, name string, idx int, t schedule.EventTemplate) error {
	return s.schedules.UpdateEvent(ctx, name, idx, t)
}

// DeleteEvent removes a template from a schedule.
func (s *Service) DeleteEvent(ctx context.Context, name string, idx int) error {
	return s.schedules.DeleteEvent(ctx, name, idx)
}

// UpdateColorMappings replaces a schedule's type to color mapping.
func (s *Service) UpdateColorMappings(ctx context.Context, name string, mappings map[string]string) error {
	return s.schedules.UpdateColorMappings(ctx, name, mappings)
}

// CalendarConfig returns all calendar entries and direct events.
func (s *Service) CalendarConfig(ctx context.Context) (*schedule.CalendarConfig, error) {
	return s.calendar.LoadCalendarConfig(ctx)
}

// AddEntry maps a date range onto an existing schedule.
func (s *Service) AddEntry(ctx context.Context, e schedule.CalendarEntry) (int, error) {
	if err := s.checkEntry(ctx, e); err != nil {
		return 0, err
	}
	idx, err := s.calendar.AddEntry(ctx, e)
	if err != nil {
		return 0, err
	}
	s.log.Info("calendar entry added", "start", e.StartDate, "end", e.EndDate, "schedule", e.ScheduleFilename)
	return idx, nil
}

// UpdateEntry replaces the entry at idx.
func (s *Service) UpdateEntry(ctx context.Context, idx int, e schedule.CalendarEntry) error {
	cfg, err := s.calendar.LoadCalendarConfig(ctx)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(cfg.Entries) {
		return fmt.Errorf("%w: entry index %d out of range", schedule.ErrNotFound, idx)
	}
	if err := s.checkEntry(ctx, e); err != nil {
		return err
	}
	return s.calendar.UpdateEntry(ctx, idx, e)
}

// DeleteEntry removes the entry at idx.
func (s *Service) DeleteEntry(ctx context.Context, idx int) error {
	return s.calendar.DeleteEntry(ctx, idx)
}

func (s *Service) checkEntry(ctx context.Context, e schedule.CalendarEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	ok, err := s.schedules.ScheduleExists(ctx, e.ScheduleFilename)
	if err != nil {
		return err
	}
	if !ok {
		return &schedule.ValidationError{
			Field: "schedule_filename",
			Msg:   fmt.Sprintf("Schedule file '%s' not found.", e.ScheduleFilename),
		}
	}
	return nil
}

// AddDirectEvent stores a one-off event and returns its index.
func (s *Service) AddDirectEvent(ctx context.Context, d schedule.DirectEvent) (int, error) {
	idx, err := s.calendar.AddDirectEvent(ctx, d)
	if err != nil {
		return 0, err
	}
	s.log.Info("direct event added", "date", d.Date, "title", d.Title)
	return idx, nil
}

// UpdateDirectEvent replaces the direct event at idx.
func (s *Service) UpdateDirectEvent(ctx context.Context, idx int, d schedule.DirectEvent) error {
	return s.calendar.UpdateDirectEvent(ctx, idx, d)
}

// DeleteDirectEvent removes the direct event at idx.
func (s *Service) DeleteDirectEvent(ctx context.Context, idx int) error {
	return s.calendar.DeleteDirectEvent(ctx, idx)
}

// Day returns the merged events of one date. An empty date means today.
func (s *Service) Day(ctx context.Context, date string) (*DateView, error) {
	d, err := parseDay(date)
	if err != nil {
		return nil, err
	}
	r, err := s.Range(ctx, d, d)
	if err != nil {
		return nil, err
	}
	return &DateView{Date: d, DayEvents: r.Days[d], Colors: r.Colors}, nil
}

// Week returns the Monday to Sunday week containing date. An empty date
// means today.
func (s *Service) Week(ctx context.Context, date string) (*WeekView, error) {
	d, err := parseDay(date)
	if err != nil {
		return nil, err
	}
	t, _ := dateutil.ParseDate(d)
	monday, sunday := dateutil.WeekRange(t)

	r, err := s.Range(ctx, dateutil.FormatDate(monday), dateutil.FormatDate(sunday))
	if err != nil {
		return nil, err
	}
	return &WeekView{WeekStart: r.StartDate, WeekEnd: r.EndDate, Days: r.Days, Colors: r.Colors}, nil
}

// loadedSchedule is a schedule read once per range request.
type loadedSchedule struct {
	instances []schedule.EventInstance
	colors    palette.Scheme
}

// Range merges schedule and direct events for every date in [start, end].
func (s *Service) Range(ctx context.Context, start, end string) (*RangeView, error) {
	if start == "" || end == "" {
		return nil, &schedule.ValidationError{Msg: "start and end parameters required"}
	}
	dr, err := parseRange(start, end)
	if err != nil {
		return nil, err
	}
	dates := dr.Dates()
	if len(dates) > MaxRangeDays {
		return nil, &schedule.ValidationError{
			Field: "end",
			Msg:   fmt.Sprintf("range spans %d days; at most %d are allowed", len(dates), MaxRangeDays),
		}
	}

	cfg, err := s.calendar.LoadCalendarConfig(ctx)
	if err != nil {
		return nil, err
	}
	direct, err := s.calendar.DirectEventsForRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	view := &RangeView{
		StartDate: start,
		EndDate:   end,
		Days:      make(map[string]DayEvents, len(dates)),
		Colors:    palette.Scheme{},
		Dates:     dates,
	}
	loaded := make(map[string]*loadedSchedule)

	for _, date := range dates {
		day := DayEvents{}
		var scheduled []schedule.EventInstance

		if filename, ok := schedule.ScheduleForDate(cfg.Entries, date); ok {
			day.ScheduleFilename = filename
			day.ScheduleName = s.names.Get(ctx, filename)
			day.ScheduleColor = palette.ScheduleColorFor(filename)

			ls, err := s.loadForRange(ctx, loaded, filename)
			if err != nil {
				return nil, err
			}
			if ls != nil {
				t, _ := dateutil.ParseDate(date)
				scheduled = schedule.EventsForDay(ls.instances, dateutil.DayOfWeek(t))
				maps.Copy(view.Colors, ls.colors)
			}
		}

		stored := direct[date]
		directInstances := make([]schedule.EventInstance, len(stored))
		for i, d := range stored {
			directInstances[i] = d.Instance()
			view.Colors.Merge(palette.Generate([]string{directInstances[i].Type}, nil))
		}

		day.Events = schedule.MergeDay(scheduled, directInstances)
		view.Days[date] = day
	}
	return view, nil
}

// loadForRange loads a schedule once per request. A schedule that has
// gone missing yields nil so its dates show only direct events.
func (s *Service) loadForRange(ctx context.Context, cache map[string]*loadedSchedule, filename string) (*loadedSchedule, error) {
	if ls, ok := cache[filename]; ok {
		return ls, nil
	}
	sched, err := s.schedules.LoadSchedule(ctx, filename)
	if errors.Is(err, schedule.ErrNotFound) {
		s.log.Warn("calendar entry points at a missing schedule", "filename", filename)
		cache[filename] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	ls := &loadedSchedule{instances: sched.Instances(), colors: sched.Colors()}
	cache[filename] = ls
	return ls, nil
}

// ScheduledRanges returns the calendar entries that intersect [start, end],
// clipped to it, with their schedules loaded. Entries whose schedule is
// missing are skipped. The direct events of the window are returned too.
func (s *Service) ScheduledRanges(ctx context.Context, start, end string) ([]ScheduledRange, map[string][]schedule.StoredDirectEvent, error) {
	if _, err := parseRange(start, end); err != nil {
		return nil, nil, err
	}
	cfg, err := s.calendar.LoadCalendarConfig(ctx)
	if err != nil {
		return nil, nil, err
	}

	var out []ScheduledRange
	for _, e := range cfg.Entries {
		if e.EndDate < start || e.StartDate > end {
			continue
		}
		sched, err := s.schedules.LoadSchedule(ctx, e.ScheduleFilename)
		if errors.Is(err, schedule.ErrNotFound) {
			s.log.Warn("calendar entry points at a missing schedule", "filename", e.ScheduleFilename)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		out = append(out, ScheduledRange{
			StartDate: max(e.StartDate, start),
			EndDate:   min(e.EndDate, end),
			Filename:  e.ScheduleFilename,
			Schedule:  sched,
		})
	}

	direct, err := s.calendar.DirectEventsForRange(ctx, start, end)
	if err != nil {
		return nil, nil, err
	}
	return out, direct, nil
}

// PrintSchedule renders a schedule as a PDF page and returns it with a
// download filename derived from the schedule's name.
func (s *Service) PrintSchedule(ctx context.Context, name string, view layout.View) ([]byte, string, error) {
	sched, err := s.schedules.LoadSchedule(ctx, name)
	if err != nil {
		return nil, "", err
	}

	data, err := pdf.Export(layout.Document{
		Name:        sched.Name,
		Description: sched.Description,
		Events:      sched.Instances(),
		Colors:      sched.Colors(),
		View:        view,
	})
	if err != nil {
		if errors.Is(err, layout.ErrInvalidHourWindow) || errors.Is(err, layout.ErrInvalidViewDay) {
			return nil, "", &schedule.ValidationError{Field: "view", Msg: err.Error(), Err: err}
		}
		return nil, "", fmt.Errorf("rendering pdf: %w", err)
	}

	title := sched.Name
	if title == "" {
		title = strings.TrimSuffix(name, ".json")
	}
	s.log.Info("schedule printed", "filename", name, "bytes", len(data))
	return data, PrintFilename(title), nil
}

// PrintFilename keeps letters, digits, spaces, dashes and underscores of
// name, trims trailing spaces and appends .pdf.
func PrintFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	safe := strings.TrimRight(b.String(), " ")
	if safe == "" {
		safe = "schedule"
	}
	return safe + ".pdf"
}

func parseDay(date string) (string, error) {
	t, err := dateutil.ParseDate(date)
	if err != nil {
		return "", &schedule.ValidationError{Field: "date", Msg: "Invalid date format. Use YYYY-MM-DD.", Err: err}
	}
	return dateutil.FormatDate(t), nil
}

func parseRange(start, end string) (*dateutil.DateRange, error) {
	dr, err := dateutil.NewDateRange(start, end)
	if errors.Is(err, dateutil.ErrEndDateBeforeStart) {
		return nil, &schedule.RangeError{Msg: "Start date must be before or equal to end date."}
	}
	if err != nil {
		return nil, &schedule.ValidationError{Field: "date", Msg: "Invalid date format. Use YYYY-MM-DD.", Err: err}
	}
	return dr, nil
}
