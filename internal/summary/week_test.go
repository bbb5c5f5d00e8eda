package summary

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/brendondgr/Mango-Apps/internal/calendar"
	"github.com/brendondgr/Mango-Apps/internal/schedule"
)

func instance(title, typ string, day, start, end int) schedule.EventInstance {
	return schedule.EventInstance{
		Title:       title,
		Type:        typ,
		Day:         day,
		Start:       start,
		End:         end,
		OriginalIdx: -1,
		DirectIndex: -1,
	}
}

func flexible(e schedule.EventInstance) schedule.EventInstance {
	e.Overwriteable = true
	return e
}

func testWeek() *calendar.WeekView {
	return &calendar.WeekView{
		WeekStart: "2025-01-13",
		WeekEnd:   "2025-01-19",
		Days: map[string]calendar.DayEvents{
			"2025-01-13": {
				ScheduleName: "Work Week",
				Events: []schedule.EventInstance{
					instance("Standup", "work", 0, 9*60, 10*60),
					instance("Focus", "work", 0, 10*60, 12*60),
				},
			},
			"2025-01-15": {
				Events: []schedule.EventInstance{
					// The call hides the second half of the run.
					flexible(instance("Run", "exercise", 2, 7*60, 8*60)),
					instance("Call", "", 2, 7*60+30, 8*60+30),
				},
			},
		},
	}
}

func TestSummarizeWeek(t *testing.T) {
	sum, err := SummarizeWeek(testWeek())
	if err != nil {
		t.Fatalf("SummarizeWeek failed: %v", err)
	}

	monday := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	if !sum.Start.Equal(monday) {
		t.Fatalf("start = %v, want %v", sum.Start, monday)
	}
	if len(sum.Days) != 7 {
		t.Fatalf("days = %d, want 7", len(sum.Days))
	}
	if sum.EventCount() != 4 {
		t.Errorf("EventCount() = %d, want 4", sum.EventCount())
	}

	tests := []struct {
		category string
		want     float64
	}{
		{"work", 3},
		{"exercise", 0.5},
		{"other", 1},
		{"class", 0},
	}
	for _, tc := range tests {
		if got := sum.Stats.ByCategory[tc.category]; got != tc.want {
			t.Errorf("ByCategory[%q] = %v, want %v", tc.category, got, tc.want)
		}
	}
	if sum.Stats.Total != 4.5 {
		t.Errorf("Total = %v, want 4.5", sum.Stats.Total)
	}
	if sum.Days[0].Hours != 3 || sum.Days[1].Hours != 0 {
		t.Errorf("day hours = %v, %v", sum.Days[0].Hours, sum.Days[1].Hours)
	}
}

func TestCategories(t *testing.T) {
	sum, err := SummarizeWeek(testWeek())
	if err != nil {
		t.Fatalf("SummarizeWeek failed: %v", err)
	}
	got := strings.Join(sum.Categories(), ",")
	if got != "work,other,exercise" {
		t.Errorf("Categories() = %q, want %q", got, "work,other,exercise")
	}
}

func TestText(t *testing.T) {
	sum, err := SummarizeWeek(testWeek())
	if err != nil {
		t.Fatalf("SummarizeWeek failed: %v", err)
	}
	text := sum.Text()

	for _, want := range []string{
		"Week Mon Jan 13 - Sun Jan 19, 2025",
		"Mon Jan 13 (Work Week)",
		"  09:00-10:00  Standup [work]",
		"  07:30-08:30  Call [other]",
		"Tue Jan 14\n  nothing scheduled",
		"Total: 4.5h (work 3h, other 1h, exercise 0.5h)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Text() missing %q\n%s", want, text)
		}
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{0, "0h"},
		{1, "1h"},
		{1.5, "1.5h"},
		{2.26, "2.3h"},
		{10, "10h"},
	}
	for _, tc := range tests {
		if got := FormatHours(tc.hours); got != tc.want {
			t.Errorf("FormatHours(%v) = %q, want %q", tc.hours, got, tc.want)
		}
	}
}

type weekFunc func(ctx context.Context, date string) (*calendar.WeekView, error)

func (f weekFunc) Week(ctx context.Context, date string) (*calendar.WeekView, error) {
	return f(ctx, date)
}

func TestBuildWeekSummary(t *testing.T) {
	var asked string
	src := weekFunc(func(_ context.Context, date string) (*calendar.WeekView, error) {
		asked = date
		return testWeek(), nil
	})

	sum, err := BuildWeekSummary(context.Background(), src, time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("BuildWeekSummary failed: %v", err)
	}
	if asked != "2025-01-15" {
		t.Errorf("asked for %q, want 2025-01-15", asked)
	}
	if sum.EventCount() != 4 {
		t.Errorf("EventCount() = %d, want 4", sum.EventCount())
	}

	failing := weekFunc(func(context.Context, string) (*calendar.WeekView, error) {
		return nil, errors.New("boom")
	})
	if _, err := BuildWeekSummary(context.Background(), failing, time.Time{}); err == nil {
		t.Error("expected error from failing source")
	}
}
