package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/brendondgr/Mango-Apps/internal/schedule"
	"github.com/brendondgr/Mango-Apps/internal/summary"
)

// View renders the TUI.
func (m Model) View() string {
	var b strings.Builder

	end := m.weekStart.AddDate(0, 0, 6)
	title := fmt.Sprintf("mango-calendar  %s - %s", m.weekStart.Format("Jan 2"), end.Format("Jan 2, 2006"))
	b.WriteString(m.styles.TitleStyle.Render(title))
	if m.loading {
		b.WriteString(" " + m.styles.MutedStyle.Render("loading..."))
	}
	b.WriteString("\n\n")

	if m.week != nil {
		b.WriteString(m.renderWeek())
		b.WriteString("\n")
		b.WriteString(m.renderDetail())
		b.WriteString("\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(m.styles.ErrorStyle.Render("Error: "+m.err.Error()) + "\n")
	case m.status != "":
		b.WriteString(m.styles.StatusStyle.Render(m.status) + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// colWidth returns the width of one day column including padding.
func (m Model) colWidth() int {
	if m.width <= 0 {
		return minColWidth + 4
	}
	return max(minColWidth, m.width/7)
}

func (m Model) renderWeek() string {
	w := m.colWidth()
	cols := make([]string, 0, len(m.week.Days))
	for i, d := range m.week.Days {
		cols = append(cols, m.renderDay(i, d, w))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m Model) renderDay(i int, d summary.DaySummary, width int) string {
	inner := width - 2

	header := d.Date.Format("Mon 2")
	if d.Date.Equal(m.today) {
		header = m.styles.DayHeaderTodayStyle.Render(header)
	} else {
		header = m.styles.DayHeaderStyle.Render(header)
	}
	lines := []string{header}

	if len(d.Events) == 0 {
		lines = append(lines, m.styles.EmptyStyle.Render("free"))
	}
	for _, e := range d.Events {
		lines = append(lines, m.renderEvent(e, inner))
	}

	style := m.styles.ColumnStyle
	if i == m.cursor {
		style = m.styles.ColumnSelectedStyle
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

// renderEvent draws one event as a colored block preceded by a marker
// telling schedule and direct events apart.
func (m Model) renderEvent(e schedule.EventInstance, width int) string {
	mark := m.styles.ScheduleMarkStyle.Render("▌")
	if e.Source == schedule.SourceDirect {
		mark = m.styles.DirectMarkStyle.Render("▌")
	}

	text := ansi.Truncate(schedule.FormatTime(e.Start)+" "+e.Title, max(1, width-1), "…")
	bg, fg := m.styles.palette.EventColors(m.week.Colors.HexFor(e.Type))
	block := lipgloss.NewStyle().Background(bg).Foreground(fg).Width(max(1, width-1)).Render(text)
	return mark + block
}

func (m Model) renderDetail() string {
	d := m.week.Days[m.cursor]

	header := d.Date.Format("Monday, January 2")
	if d.ScheduleName != "" {
		header += "  " + m.styles.MutedStyle.Render(d.ScheduleName)
	}
	lines := []string{m.styles.DetailHeaderStyle.Render(header)}

	if len(d.Events) == 0 {
		lines = append(lines, m.styles.EmptyStyle.Render("Nothing scheduled."))
	}
	for i, e := range d.Events {
		line := fmt.Sprintf("%s-%s  %s", schedule.FormatTime(e.Start), schedule.FormatTime(e.End), e.Title)
		if e.Sub != "" {
			line += " (" + e.Sub + ")"
		}
		typ := e.Type
		if typ == "" {
			typ = schedule.DefaultType
		}
		hours := summary.FormatHours(schedule.EffectiveHours(d.Events, i))
		line += "  " + m.styles.MutedStyle.Render(fmt.Sprintf("[%s] %s", typ, hours))
		lines = append(lines, line)
	}
	lines = append(lines, m.styles.MutedStyle.Render(fmt.Sprintf("Day %s  |  Week %s",
		summary.FormatHours(d.Hours), summary.FormatHours(m.week.Stats.Total))))

	return m.styles.DetailStyle.Render(strings.Join(lines, "\n"))
}
