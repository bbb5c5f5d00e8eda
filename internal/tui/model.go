// Package tui provides the terminal week browser for mango-calendar.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/brendondgr/Mango-Apps/internal/dateutil"
	"github.com/brendondgr/Mango-Apps/internal/summary"
	"github.com/brendondgr/Mango-Apps/internal/tui/commands"
	"github.com/brendondgr/Mango-Apps/internal/tui/theme"
)

// statusTimeout is how long status messages stay on screen.
const statusTimeout = 3 * time.Second

// Model is the main TUI model.
type Model struct {
	// Dependencies
	src    summary.Weeker
	styles *Styles
	keys   keyMap
	help   help.Model

	// State
	today     time.Time
	weekStart time.Time // Monday of the displayed week
	cursor    int       // 0=Monday, 6=Sunday
	week      *summary.WeekSummary
	loading   bool
	err       error
	status    string

	width  int
	height int
}

// New creates a Model showing the week containing now.
func New(src summary.Weeker, t *theme.Theme, now time.Time) Model {
	today := dateutil.TruncateToDay(now)
	monday, _ := dateutil.WeekRange(today)

	return Model{
		src:       src,
		styles:    NewStyles(theme.NewPalette(t)),
		keys:      defaultKeyMap(),
		help:      help.New(),
		today:     today,
		weekStart: monday,
		cursor:    dateutil.DayOfWeek(today),
		loading:   true,
	}
}

// Init loads the first week.
func (m Model) Init() tea.Cmd {
	return commands.LoadWeek(m.src, m.weekStart)
}

// Run starts the TUI with the named theme.
func Run(src summary.Weeker, themeName string) error {
	t, err := theme.Load(themeName)
	if err != nil {
		return err
	}
	p := tea.NewProgram(New(src, t, time.Now()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// selectedDate returns the date under the cursor.
func (m Model) selectedDate() time.Time {
	return m.weekStart.AddDate(0, 0, m.cursor)
}

// shiftWeek moves the displayed week by n weeks and reloads it.
func (m Model) shiftWeek(n int) (Model, tea.Cmd) {
	m.weekStart = m.weekStart.AddDate(0, 0, 7*n)
	m.loading = true
	return m, commands.LoadWeek(m.src, m.weekStart)
}
