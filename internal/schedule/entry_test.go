package schedule

import (
	"errors"
	"strings"
	"testing"
)

func TestCalendarEntry_Validate(t *testing.T) {
	tests := []struct {
		name      string
		entry     CalendarEntry
		wantRange bool
		wantValid bool
	}{
		{name: "valid", entry: CalendarEntry{"2025-01-10", "2025-01-20", "fall.json"}},
		{name: "single day", entry: CalendarEntry{"2025-01-10", "2025-01-10", "fall.json"}},
		{name: "missing schedule", entry: CalendarEntry{"2025-01-10", "2025-01-20", ""}, wantValid: true},
		{name: "bad date", entry: CalendarEntry{"01/10/2025", "2025-01-20", "fall.json"}, wantValid: true},
		{name: "inverted", entry: CalendarEntry{"2025-01-20", "2025-01-10", "fall.json"}, wantRange: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if !tt.wantRange && !tt.wantValid {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if tt.wantRange && !IsRange(err) {
				t.Errorf("expected RangeError, got %v", err)
			}
			if tt.wantValid && !IsValidation(err) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestCheckEntryOverlap(t *testing.T) {
	existing := []CalendarEntry{
		{StartDate: "2025-01-15", EndDate: "2025-01-25", ScheduleFilename: "spring.json"},
	}

	err := CheckEntryOverlap(existing, CalendarEntry{"2025-01-10", "2025-01-20", "fall.json"}, -1)
	var re *RangeError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RangeError, got %v", err)
	}
	if re.ConflictStart != "2025-01-15" || re.ConflictEnd != "2025-01-25" {
		t.Errorf("conflict = %s..%s, want 2025-01-15..2025-01-25", re.ConflictStart, re.ConflictEnd)
	}
	if !strings.Contains(re.Error(), "2025-01-15 to 2025-01-25") {
		t.Errorf("message %q does not name the conflicting range", re.Error())
	}

	t.Run("touching days overlap", func(t *testing.T) {
		err := CheckEntryOverlap(existing, CalendarEntry{"2025-01-25", "2025-01-30", "fall.json"}, -1)
		if !IsRange(err) {
			t.Errorf("expected RangeError for shared end day, got %v", err)
		}
	})

	t.Run("adjacent ranges are allowed", func(t *testing.T) {
		err := CheckEntryOverlap(existing, CalendarEntry{"2025-01-26", "2025-01-30", "fall.json"}, -1)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("excluded index is skipped", func(t *testing.T) {
		err := CheckEntryOverlap(existing, CalendarEntry{"2025-01-10", "2025-01-20", "spring.json"}, 0)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestScheduleForDate(t *testing.T) {
	entries := []CalendarEntry{
		{StartDate: "2025-01-01", EndDate: "2025-01-31", ScheduleFilename: "jan.json"},
		{StartDate: "2025-02-01", EndDate: "2025-02-28", ScheduleFilename: "feb.json"},
	}

	tests := []struct {
		date   string
		want   string
		wantOK bool
	}{
		{"2025-01-01", "jan.json", true},
		{"2025-01-31", "jan.json", true},
		{"2025-02-14", "feb.json", true},
		{"2025-03-01", "", false},
	}
	for _, tt := range tests {
		got, ok := ScheduleForDate(entries, tt.date)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ScheduleForDate(%q) = %q, %v, want %q, %v", tt.date, got, ok, tt.want, tt.wantOK)
		}
	}
}
