package integration

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/brendondgr/Mango-Apps/internal/dateutil"
	"github.com/brendondgr/Mango-Apps/internal/ics"
)

func loadLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("time zone %s unavailable: %v", name, err)
	}
	return loc
}

func TestWeekRangeAcrossDST(t *testing.T) {
	loc := loadLocation(t, "America/New_York")

	tests := []struct {
		name   string
		at     time.Time
		monday string
		sunday string
	}{
		// Clocks go forward on Sunday 2025-03-09.
		{"spring forward sunday", time.Date(2025, 3, 9, 23, 30, 0, 0, loc), "2025-03-03", "2025-03-09"},
		{"week after spring forward", time.Date(2025, 3, 12, 0, 15, 0, 0, loc), "2025-03-10", "2025-03-16"},
		// Clocks go back on Sunday 2025-11-02.
		{"fall back sunday", time.Date(2025, 11, 2, 1, 30, 0, 0, loc), "2025-10-27", "2025-11-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			monday, sunday := dateutil.WeekRange(tt.at)
			if got := dateutil.FormatDate(monday); got != tt.monday {
				t.Errorf("monday = %s, want %s", got, tt.monday)
			}
			if got := dateutil.FormatDate(sunday); got != tt.sunday {
				t.Errorf("sunday = %s, want %s", got, tt.sunday)
			}
		})
	}
}

func TestWeekViewAcrossDST(t *testing.T) {
	e := open(t, t.TempDir())
	brk := e.saveSchedule(t, "break", breakWeek)
	e.addEntry(t, "2025-03-03", "2025-03-16", brk)

	week, err := e.svc.Week(context.Background(), "2025-03-09")
	if err != nil {
		t.Fatalf("Week: %v", err)
	}
	if week.WeekStart != "2025-03-03" || week.WeekEnd != "2025-03-09" {
		t.Fatalf("week = %s..%s, want 2025-03-03..2025-03-09", week.WeekStart, week.WeekEnd)
	}
	if len(week.Days) != 7 {
		t.Errorf("days = %d, want 7", len(week.Days))
	}
	for _, date := range []string{"2025-03-03", "2025-03-05", "2025-03-07"} {
		if got := titles(week.Days[date].Events); !equal(got, []string{"Run@07:00-08:00"}) {
			t.Errorf("%s events = %v, want the morning run", date, got)
		}
	}
}

func TestICSUsesFloatingTimes(t *testing.T) {
	loc := loadLocation(t, "America/New_York")
	e := open(t, t.TempDir())
	brk := e.saveSchedule(t, "break", breakWeek)
	e.addEntry(t, "2025-03-03", "2025-03-16", brk)

	r, err := e.svc.Range(context.Background(), "2025-03-07", "2025-03-10")
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	out, err := ics.Export(r, ics.Options{Name: "test", Stamp: time.Date(2025, 3, 1, 12, 0, 0, 0, loc)})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	// The run keeps its wall-clock time on both sides of the change.
	for _, want := range []string{"DTSTART:20250307T070000", "DTSTART:20250310T070000"} {
		if !strings.Contains(out, want+"\r\n") {
			t.Errorf("export missing %q:\n%s", want, out)
		}
	}
}
