package commands

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/brendondgr/Mango-Apps/internal/calendar"
	"github.com/brendondgr/Mango-Apps/internal/summary"
)

type staticWeek struct {
	view *calendar.WeekView
	err  error
}

func (s staticWeek) Week(context.Context, string) (*calendar.WeekView, error) {
	return s.view, s.err
}

func TestLoadWeek(t *testing.T) {
	start := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	src := staticWeek{view: &calendar.WeekView{
		WeekStart: "2025-01-13",
		WeekEnd:   "2025-01-19",
		Days:      map[string]calendar.DayEvents{},
	}}

	msg := LoadWeek(src, start)()
	loaded, ok := msg.(WeekLoadedMsg)
	if !ok {
		t.Fatalf("LoadWeek returned %T, want WeekLoadedMsg", msg)
	}
	if !loaded.Start.Equal(start) || len(loaded.Summary.Days) != 7 {
		t.Errorf("unexpected week: start %v, %d days", loaded.Start, len(loaded.Summary.Days))
	}

	msg = LoadWeek(staticWeek{err: errors.New("boom")}, start)()
	if _, ok := msg.(ErrMsg); !ok {
		t.Errorf("LoadWeek with failing source returned %T, want ErrMsg", msg)
	}
}

func TestCopyWeek(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })

	sum, err := summary.SummarizeWeek(&calendar.WeekView{WeekStart: "2025-01-13", WeekEnd: "2025-01-19"})
	if err != nil {
		t.Fatalf("SummarizeWeek failed: %v", err)
	}

	msg := CopyWeek(sum)()
	if _, ok := msg.(StatusMsgCmd); !ok {
		t.Fatalf("CopyWeek returned %T, want StatusMsgCmd", msg)
	}
	if !strings.HasPrefix(copied, "Week Mon Jan 13") {
		t.Errorf("copied %q", copied)
	}

	if _, ok := CopyWeek(nil)().(ErrMsg); !ok {
		t.Error("CopyWeek(nil) should fail")
	}
}
