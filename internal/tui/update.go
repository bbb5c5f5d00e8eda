package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/brendondgr/Mango-Apps/internal/dateutil"
	"github.com/brendondgr/Mango-Apps/internal/tui/commands"
)

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case commands.WeekLoadedMsg:
		// A reply for a week we have already navigated away from.
		if !msg.Start.Equal(m.weekStart) {
			return m, nil
		}
		m.week = msg.Summary
		m.loading = false
		m.err = nil
		return m, nil

	case commands.ErrMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case commands.StatusMsgCmd:
		m.status = msg.Msg
		return m, commands.ClearStatusAfter(statusTimeout)

	case commands.ClearStatusMsg:
		m.status = ""
		return m, nil
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
			return m, nil
		}
		m.cursor = 6
		return m.shiftWeek(-1)

	case key.Matches(msg, m.keys.Right):
		if m.cursor < 6 {
			m.cursor++
			return m, nil
		}
		m.cursor = 0
		return m.shiftWeek(1)

	case key.Matches(msg, m.keys.PrevWeek):
		return m.shiftWeek(-1)

	case key.Matches(msg, m.keys.NextWeek):
		return m.shiftWeek(1)

	case key.Matches(msg, m.keys.Today):
		monday, _ := dateutil.WeekRange(m.today)
		m.cursor = dateutil.DayOfWeek(m.today)
		if monday.Equal(m.weekStart) {
			return m, nil
		}
		m.weekStart = monday
		m.loading = true
		return m, commands.LoadWeek(m.src, m.weekStart)

	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, commands.LoadWeek(m.src, m.weekStart)

	case key.Matches(msg, m.keys.Copy):
		return m, commands.CopyWeek(m.week)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}
