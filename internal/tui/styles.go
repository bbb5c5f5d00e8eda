package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/brendondgr/Mango-Apps/internal/tui/theme"
)

// minColWidth is the narrowest a day column is drawn.
const minColWidth = 14

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	TitleStyle          lipgloss.Style
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style
	ColumnStyle         lipgloss.Style
	ColumnSelectedStyle lipgloss.Style
	EmptyStyle          lipgloss.Style
	ScheduleMarkStyle   lipgloss.Style
	DirectMarkStyle     lipgloss.Style
	DetailStyle         lipgloss.Style
	DetailHeaderStyle   lipgloss.Style
	MutedStyle          lipgloss.Style
	StatusStyle         lipgloss.Style
	ErrorStyle          lipgloss.Style
}

// NewStyles creates styles from a palette.
func NewStyles(p *theme.Palette) *Styles {
	column := lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.BgHighlight).
		Foreground(p.Fg)

	return &Styles{
		palette: p,

		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.TextOnAccent).
			Background(p.Accent).
			Padding(0, 1),
		DayHeaderStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Fg),
		DayHeaderTodayStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.TextOnToday).
			Background(p.Today),
		ColumnStyle:         column,
		ColumnSelectedStyle: column.Background(p.BgSelection),
		EmptyStyle:          lipgloss.NewStyle().Foreground(p.FgMuted).Italic(true),
		ScheduleMarkStyle:   lipgloss.NewStyle().Foreground(p.Schedule),
		DirectMarkStyle:     lipgloss.NewStyle().Foreground(p.Direct),
		DetailStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(0, 1),
		DetailHeaderStyle: lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		MutedStyle:        lipgloss.NewStyle().Foreground(p.FgMuted),
		StatusStyle:       lipgloss.NewStyle().Foreground(p.Today),
		ErrorStyle:        lipgloss.NewStyle().Foreground(p.Warning).Bold(true),
	}
}
