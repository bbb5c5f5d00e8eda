package ics

import (
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/brendondgr/Mango-Apps/internal/calendar"
	"github.com/brendondgr/Mango-Apps/internal/schedule"
)

var testStamp = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func mustParse(t *testing.T, data string) *ical.Calendar {
	t.Helper()
	cal, err := ical.ParseCalendar(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseCalendar failed: %v", err)
	}
	return cal
}

func prop(ev *ical.VEvent, p ical.ComponentProperty) string {
	if v := ev.GetProperty(p); v != nil {
		return v.Value
	}
	return ""
}

func wednesdayView() *calendar.RangeView {
	standup := schedule.EventInstance{Title: "Standup", Type: "work", Day: 2, Start: 540, End: 555, Source: schedule.SourceSchedule, Split: schedule.SplitBefore, DirectIndex: -1}
	call := schedule.EventInstance{Title: "Call", Type: "other", Sub: "with Sam", Day: 2, Start: 555, End: 585, Source: schedule.SourceDirect, OriginalIdx: -1}
	after := standup.WithSpan(585, 600).WithSplit(schedule.SplitAfter)

	return &calendar.RangeView{
		StartDate: "2025-01-15",
		EndDate:   "2025-01-15",
		Days: map[string]calendar.DayEvents{
			"2025-01-15": {Events: []schedule.EventInstance{standup, call, after}},
		},
	}
}

func TestExport(t *testing.T) {
	out, err := Export(wednesdayView(), Options{Name: "Work", Stamp: testStamp})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(out, "X-WR-CALNAME:Work") {
		t.Errorf("missing calendar name:\n%s", out)
	}

	events := mustParse(t, out).Events()
	if len(events) != 3 {
		t.Fatalf("events: got %d, want 3", len(events))
	}

	want := []struct {
		summary, start, end, category string
	}{
		{"Standup", "20250115T090000", "20250115T091500", "work"},
		{"Call", "20250115T091500", "20250115T094500", "other"},
		{"Standup", "20250115T094500", "20250115T100000", "work"},
	}
	for i, w := range want {
		ev := events[i]
		if got := prop(ev, ical.ComponentPropertySummary); got != w.summary {
			t.Errorf("event %d summary = %q, want %q", i, got, w.summary)
		}
		if got := prop(ev, ical.ComponentPropertyDtStart); got != w.start {
			t.Errorf("event %d DTSTART = %q, want %q", i, got, w.start)
		}
		if got := prop(ev, ical.ComponentPropertyDtEnd); got != w.end {
			t.Errorf("event %d DTEND = %q, want %q", i, got, w.end)
		}
		if got := prop(ev, ical.ComponentPropertyCategories); got != w.category {
			t.Errorf("event %d CATEGORIES = %q, want %q", i, got, w.category)
		}
	}
	if got := prop(events[1], ical.ComponentPropertyDescription); got != "with Sam" {
		t.Errorf("description = %q, want %q", got, "with Sam")
	}
}

func TestExport_StableUIDs(t *testing.T) {
	first, err := Export(wednesdayView(), Options{Stamp: testStamp})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	second, err := Export(wednesdayView(), Options{Stamp: testStamp.Add(time.Hour)})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	a, b := mustParse(t, first).Events(), mustParse(t, second).Events()
	seen := make(map[string]bool)
	for i := range a {
		if a[i].Id() != b[i].Id() {
			t.Errorf("event %d UID changed: %q vs %q", i, a[i].Id(), b[i].Id())
		}
		if seen[a[i].Id()] {
			t.Errorf("duplicate UID %q", a[i].Id())
		}
		seen[a[i].Id()] = true
	}
}

func TestExport_MidnightEnd(t *testing.T) {
	view := &calendar.RangeView{
		Days: map[string]calendar.DayEvents{
			"2025-01-15": {Events: []schedule.EventInstance{{Title: "Night", Type: "other", Start: 22 * 60, End: 24 * 60}}},
		},
	}
	out, err := Export(view, Options{Stamp: testStamp})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	events := mustParse(t, out).Events()
	if got := prop(events[0], ical.ComponentPropertyDtEnd); got != "20250116T000000" {
		t.Errorf("DTEND = %q, want %q", got, "20250116T000000")
	}
}

func TestWeeklyRule(t *testing.T) {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 19, 0, 0, 0, 0, time.UTC)

	r, ok, err := WeeklyRule(2, 9*60, start, end)
	if err != nil {
		t.Fatalf("WeeklyRule failed: %v", err)
	}
	if !ok {
		t.Fatal("expected occurrences")
	}
	got := r.All()
	want := []time.Time{
		time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC),
	}
	if len(got) != len(want) {
		t.Fatalf("occurrences: got %v, want %v", got, want)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("occurrence %d = %v, want %v", i, got[i], want[i])
		}
	}

	// Monday and Tuesday only: no Wednesday to match.
	if _, ok, err := WeeklyRule(2, 9*60, start, start.AddDate(0, 0, 1)); err != nil || ok {
		t.Errorf("expected no occurrences, got ok=%v err=%v", ok, err)
	}
	if _, _, err := WeeklyRule(7, 0, start, end); err == nil {
		t.Error("expected error for weekday 7")
	}
}

func TestExportRecurring(t *testing.T) {
	sched, err := schedule.DecodeSchedule([]byte(`{
		"name": "Work Week",
		"events": [
			{"title": "Standup", "type": "work", "day": [0, 2], "start": "09:00", "end": "09:30"},
			{"title": "Gym", "type": "exercise", "day": 6, "start": "18:00", "end": "19:00"}
		]
	}`))
	if err != nil {
		t.Fatalf("DecodeSchedule failed: %v", err)
	}

	ranges := []calendar.ScheduledRange{{
		StartDate: "2025-01-08",
		EndDate:   "2025-01-19",
		Filename:  "work.json",
		Schedule:  sched,
	}}
	direct := map[string][]schedule.StoredDirectEvent{
		"2025-01-10": {{DirectEvent: schedule.DirectEvent{Date: "2025-01-10", Title: "Dentist", Type: "personal", Start: "14:00", End: "15:00"}, Index: 3}},
	}

	out, err := ExportRecurring(ranges, direct, Options{Stamp: testStamp})
	if err != nil {
		t.Fatalf("ExportRecurring failed: %v", err)
	}
	events := mustParse(t, out).Events()
	if len(events) != 4 {
		t.Fatalf("events: got %d, want 4", len(events))
	}

	want := []struct {
		summary, start string
		rrule          []string
	}{
		// First Monday in range is the 13th.
		{"Standup", "20250113T090000", []string{"FREQ=WEEKLY", "COUNT=1", "BYDAY=MO"}},
		{"Standup", "20250108T090000", []string{"FREQ=WEEKLY", "COUNT=2", "BYDAY=WE"}},
		{"Gym", "20250112T180000", []string{"FREQ=WEEKLY", "COUNT=2", "BYDAY=SU"}},
		{"Dentist", "20250110T140000", nil},
	}
	for i, w := range want {
		ev := events[i]
		if got := prop(ev, ical.ComponentPropertySummary); got != w.summary {
			t.Errorf("event %d summary = %q, want %q", i, got, w.summary)
		}
		if got := prop(ev, ical.ComponentPropertyDtStart); got != w.start {
			t.Errorf("event %d DTSTART = %q, want %q", i, got, w.start)
		}
		rule := prop(ev, ical.ComponentPropertyRrule)
		if w.rrule == nil && rule != "" {
			t.Errorf("event %d has unexpected RRULE %q", i, rule)
		}
		for _, part := range w.rrule {
			if !strings.Contains(rule, part) {
				t.Errorf("event %d RRULE = %q, missing %q", i, rule, part)
			}
		}
	}
}
