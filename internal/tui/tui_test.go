package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brendondgr/Mango-Apps/internal/calendar"
	"github.com/brendondgr/Mango-Apps/internal/palette"
	"github.com/brendondgr/Mango-Apps/internal/schedule"
	"github.com/brendondgr/Mango-Apps/internal/summary"
	"github.com/brendondgr/Mango-Apps/internal/tui/commands"
	"github.com/brendondgr/Mango-Apps/internal/tui/theme"
)

// fakeWeeks serves a fixed set of events on Wednesday 2025-01-15.
type fakeWeeks struct {
	asked []string
}

func (f *fakeWeeks) Week(_ context.Context, date string) (*calendar.WeekView, error) {
	f.asked = append(f.asked, date)
	return &calendar.WeekView{
		WeekStart: "2025-01-13",
		WeekEnd:   "2025-01-19",
		Days: map[string]calendar.DayEvents{
			"2025-01-15": {
				ScheduleName: "Work Week",
				Events: []schedule.EventInstance{
					{Title: "Standup", Type: "work", Day: 2, Start: 540, End: 600, OriginalIdx: 0, DirectIndex: -1, Source: schedule.SourceSchedule},
					{Title: "Dentist", Type: "health", Day: 2, Start: 660, End: 720, OriginalIdx: -1, DirectIndex: 0, Source: schedule.SourceDirect},
				},
			},
		},
		Colors: palette.Generate([]string{"work", "health"}, nil),
	}, nil
}

var wednesday = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) (Model, *fakeWeeks) {
	t.Helper()
	th, err := theme.Load("mocha")
	if err != nil {
		t.Fatalf("theme.Load failed: %v", err)
	}
	src := &fakeWeeks{}
	return New(src, th, wednesday), src
}

// load runs the model's initial command and feeds the result back.
func load(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	next, _ := m.Update(cmd())
	return next.(Model)
}

func press(m Model, keys string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch keys {
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestNew(t *testing.T) {
	m, _ := newTestModel(t)

	monday := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	if !m.weekStart.Equal(monday) {
		t.Errorf("weekStart = %v, want %v", m.weekStart, monday)
	}
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2 (Wednesday)", m.cursor)
	}
	if !m.loading {
		t.Error("expected model to start loading")
	}
}

func TestInitLoadsWeek(t *testing.T) {
	m, src := newTestModel(t)
	m = load(t, m, m.Init())

	if m.loading {
		t.Error("loading should be cleared")
	}
	if m.week == nil || m.week.EventCount() != 2 {
		t.Fatalf("week not loaded: %+v", m.week)
	}
	if len(src.asked) != 1 || src.asked[0] != "2025-01-13" {
		t.Errorf("asked = %v, want [2025-01-13]", src.asked)
	}
}

func TestCursorMovement(t *testing.T) {
	m, _ := newTestModel(t)
	m = load(t, m, m.Init())

	m, cmd := press(m, "l")
	if m.cursor != 3 || cmd != nil {
		t.Errorf("after l: cursor = %d, cmd = %v", m.cursor, cmd)
	}
	m, _ = press(m, "left")
	m, _ = press(m, "h")
	if m.cursor != 1 {
		t.Errorf("after left, h: cursor = %d, want 1", m.cursor)
	}

	m.cursor = 6
	m, cmd = press(m, "right")
	if m.cursor != 0 {
		t.Errorf("wrapping right: cursor = %d, want 0", m.cursor)
	}
	if want := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC); !m.weekStart.Equal(want) {
		t.Errorf("wrapping right: weekStart = %v, want %v", m.weekStart, want)
	}
	if cmd == nil || !m.loading {
		t.Error("wrapping right should load the next week")
	}
}

func TestWeekNavigation(t *testing.T) {
	m, _ := newTestModel(t)
	m = load(t, m, m.Init())

	m, _ = press(m, "L")
	m, _ = press(m, "L")
	if want := time.Date(2025, 1, 27, 0, 0, 0, 0, time.UTC); !m.weekStart.Equal(want) {
		t.Errorf("after L L: weekStart = %v, want %v", m.weekStart, want)
	}
	m, _ = press(m, "H")
	if want := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC); !m.weekStart.Equal(want) {
		t.Errorf("after H: weekStart = %v, want %v", m.weekStart, want)
	}

	m.cursor = 5
	m, cmd := press(m, "t")
	if want := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC); !m.weekStart.Equal(want) {
		t.Errorf("after t: weekStart = %v, want %v", m.weekStart, want)
	}
	if m.cursor != 2 || cmd == nil {
		t.Errorf("after t: cursor = %d, cmd = %v", m.cursor, cmd)
	}
}

func TestStaleWeekIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	stale := commands.WeekLoadedMsg{
		Start:   m.weekStart.AddDate(0, 0, -7),
		Summary: &summary.WeekSummary{},
	}
	next, _ := m.Update(stale)
	if next.(Model).week != nil {
		t.Error("a reply for another week should be ignored")
	}
}

func TestStatusAndErrors(t *testing.T) {
	m, _ := newTestModel(t)
	m = load(t, m, m.Init())

	next, cmd := m.Update(commands.StatusMsgCmd{Msg: "Week copied to clipboard"})
	m = next.(Model)
	if m.status == "" || cmd == nil {
		t.Error("status should be set with a clear timer")
	}
	if !strings.Contains(m.View(), "Week copied to clipboard") {
		t.Error("view should show the status")
	}
	next, _ = m.Update(commands.ClearStatusMsg{})
	m = next.(Model)
	if m.status != "" {
		t.Errorf("status = %q, want cleared", m.status)
	}

	next, _ = m.Update(commands.ErrMsg{Err: errors.New("disk on fire")})
	if !strings.Contains(next.(Model).View(), "disk on fire") {
		t.Error("view should show the error")
	}
}

func TestView(t *testing.T) {
	m, _ := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	m = load(t, next.(Model), m.Init())

	view := m.View()
	for _, want := range []string{
		"Jan 13 - Jan 19, 2025",
		"Wed 15",
		"Standup",
		"Dentist",
		"Wednesday, January 15",
		"Work Week",
		"[health] 1h",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(m, "?")
	if !m.help.ShowAll {
		t.Error("? should show full help")
	}
	if !strings.Contains(m.View(), "copy week") {
		t.Error("full help should list copy week")
	}
	_, cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}
