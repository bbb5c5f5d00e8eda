// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/brendondgr/Mango-Apps/internal/summary"
)

// WeekLoadedMsg is sent when a week has been loaded and summarized.
type WeekLoadedMsg struct {
	Start   time.Time
	Summary *summary.WeekSummary
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadWeek loads the week starting at weekStart.
func LoadWeek(src summary.Weeker, weekStart time.Time) tea.Cmd {
	return func() tea.Msg {
		sum, err := summary.BuildWeekSummary(context.Background(), src, weekStart)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return WeekLoadedMsg{Start: weekStart, Summary: sum}
	}
}

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// CopyWeek copies the plain-text week summary to the clipboard.
func CopyWeek(sum *summary.WeekSummary) tea.Cmd {
	return func() tea.Msg {
		if sum == nil {
			return ErrMsg{Err: fmt.Errorf("no week loaded")}
		}
		if err := writeClipboard(sum.Text()); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return StatusMsgCmd{Msg: "Week copied to clipboard"}
	}
}

// ClearStatusAfter clears the status line after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
