package jsonstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brendondgr/Mango-Apps/internal/schedule"
)

const legacySchedule = `{
  "name": "Fall",
  "events": [
    {"title": "Standup", "type": "work", "day": [0, 2], "start": "09:00", "end": "09:15"},
    {"title": "Lecture", "type": "class", "day": 1, "start": "10:00", "end": "11:00"}
  ]
}`

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "schedules"))
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	return s
}

func writeFile(t *testing.T, s *Store, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(s.Dir(), name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"fall", "fall.json"},
		{"fall.json", "fall.json"},
		{"Fall.JSON", "Fall.JSON"},
		{"../etc/passwd", "..etcpasswd.json"},
		{`  a*b?c:"d"<e>|f  `, "abcdef.json"},
		{"my schedule", "my schedule.json"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.input); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLoadSchedule_MigratesColors(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	writeFile(t, s, "fall.json", legacySchedule)

	first, err := s.LoadSchedule(ctx, "fall")
	if err != nil {
		t.Fatalf("LoadSchedule failed: %v", err)
	}
	if first.ColorMappings["class"] != "yellow-orange" || first.ColorMappings["work"] != "yellow" {
		t.Errorf("unexpected migrated mappings: %v", first.ColorMappings)
	}

	raw, err := os.ReadFile(filepath.Join(s.Dir(), "fall.json"))
	if err != nil {
		t.Fatalf("reading migrated file: %v", err)
	}
	if !strings.Contains(string(raw), `"color_mappings"`) {
		t.Error("migration was not written back")
	}
	if !strings.Contains(string(raw), `"day": [`) {
		t.Error("day list shape was not preserved")
	}

	second, err := s.LoadSchedule(ctx, "fall.json")
	if err != nil {
		t.Fatalf("second LoadSchedule failed: %v", err)
	}
	if len(second.ColorMappings) != len(first.ColorMappings) {
		t.Fatalf("mappings changed between loads: %v vs %v", first.ColorMappings, second.ColorMappings)
	}
	for k, v := range first.ColorMappings {
		if second.ColorMappings[k] != v {
			t.Errorf("mapping for %q changed: %q -> %q", k, v, second.ColorMappings[k])
		}
	}
}

func TestLoadSchedule_Errors(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.LoadSchedule(ctx, "missing"); !errors.Is(err, schedule.ErrNotFound) {
		t.Errorf("LoadSchedule(missing) error = %v, want %v", err, schedule.ErrNotFound)
	}

	writeFile(t, s, "broken.json", `{"name": "Broken", "events": [{"title": "A"}]}`)
	if _, err := s.LoadSchedule(ctx, "broken"); !schedule.IsValidation(err) {
		t.Errorf("LoadSchedule(broken) error = %v, want validation error", err)
	}
}

func TestSaveAndListSchedules(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	empty, err := s.ListSchedules(ctx)
	if err != nil {
		t.Fatalf("ListSchedules failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no schedules, got %v", empty)
	}

	sched := &schedule.Schedule{Name: "Summer", ColorMappings: map[string]string{}}
	name, err := s.SaveSchedule(ctx, "summer/2025", sched)
	if err != nil {
		t.Fatalf("SaveSchedule failed: %v", err)
	}
	if name != "summer2025.json" {
		t.Errorf("saved as %q, want summer2025.json", name)
	}
	writeFile(t, s, "notes.txt", "ignored")
	writeFile(t, s, "alpha.json", legacySchedule)

	names, err := s.ListSchedules(ctx)
	if err != nil {
		t.Fatalf("ListSchedules failed: %v", err)
	}
	if strings.Join(names, ",") != "alpha.json,summer2025.json" {
		t.Errorf("ListSchedules() = %v", names)
	}

	ok, err := s.ScheduleExists(ctx, "summer2025")
	if err != nil || !ok {
		t.Errorf("ScheduleExists(summer2025) = %v, %v", ok, err)
	}

	if _, err := s.SaveSchedule(ctx, "bad", &schedule.Schedule{}); !schedule.IsValidation(err) {
		t.Errorf("SaveSchedule(no name) error = %v, want validation error", err)
	}
}

func TestEventCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	writeFile(t, s, "fall.json", legacySchedule)

	gym := schedule.LegacyEventTemplate{
		EventBase: schedule.EventBase{Title: "Gym", Type: "exercise", Overwriteable: true},
		Day:       schedule.SingleDay(5),
		Start:     "08:00",
		End:       "09:00",
	}

	idx, err := s.AddEvent(ctx, "fall", gym)
	if err != nil {
		t.Fatalf("AddEvent failed: %v", err)
	}
	if idx != 2 {
		t.Errorf("AddEvent index = %d, want 2", idx)
	}

	gym.Title = "Swim"
	if err := s.UpdateEvent(ctx, "fall", 2, gym); err != nil {
		t.Fatalf("UpdateEvent failed: %v", err)
	}
	if err := s.DeleteEvent(ctx, "fall", 0); err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}

	sched, err := s.LoadSchedule(ctx, "fall")
	if err != nil {
		t.Fatalf("LoadSchedule failed: %v", err)
	}
	if len(sched.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(sched.Events))
	}
	if sched.Events[1].Base().Title != "Swim" {
		t.Errorf("event 1 = %q, want Swim", sched.Events[1].Base().Title)
	}

	if err := s.DeleteEvent(ctx, "fall", 9); !errors.Is(err, schedule.ErrNotFound) {
		t.Errorf("DeleteEvent(9) error = %v, want %v", err, schedule.ErrNotFound)
	}
	bad := gym
	bad.End = "07:00"
	if _, err := s.AddEvent(ctx, "fall", bad); !schedule.IsValidation(err) {
		t.Errorf("AddEvent(bad) error = %v, want validation error", err)
	}
	if _, err := s.AddEvent(ctx, "nope", gym); !errors.Is(err, schedule.ErrNotFound) {
		t.Errorf("AddEvent(nope) error = %v, want %v", err, schedule.ErrNotFound)
	}
}

func TestUpdateColorMappings(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	writeFile(t, s, "fall.json", legacySchedule)

	if err := s.UpdateColorMappings(ctx, "fall", map[string]string{"work": "rose"}); err != nil {
		t.Fatalf("UpdateColorMappings failed: %v", err)
	}
	sched, err := s.LoadSchedule(ctx, "fall")
	if err != nil {
		t.Fatalf("LoadSchedule failed: %v", err)
	}
	if sched.ColorMappings["work"] != "rose" {
		t.Errorf("work mapped to %q, want rose", sched.ColorMappings["work"])
	}
	if _, ok := sched.ColorMappings["class"]; ok {
		t.Error("explicit mappings should not be re-migrated")
	}

	err = s.UpdateColorMappings(ctx, "fall", map[string]string{"work": "chartreuse"})
	if !schedule.IsValidation(err) {
		t.Errorf("UpdateColorMappings(invalid) error = %v, want validation error", err)
	}
}

func TestDeleteSchedule(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	writeFile(t, s, "fall.json", legacySchedule)

	if err := s.DeleteSchedule(ctx, "fall"); err != nil {
		t.Fatalf("DeleteSchedule failed: %v", err)
	}
	if ok, _ := s.ScheduleExists(ctx, "fall"); ok {
		t.Error("schedule still exists after delete")
	}
	if err := s.DeleteSchedule(ctx, "fall"); !errors.Is(err, schedule.ErrNotFound) {
		t.Errorf("second DeleteSchedule error = %v, want %v", err, schedule.ErrNotFound)
	}
}
