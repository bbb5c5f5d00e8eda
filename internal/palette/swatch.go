package palette

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Swatch renders label on the color's background with its border color
// as a left bar, for terminal listings.
func Swatch(c Color, label string) string {
	bar := lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Hex.Border)).
		Render("▌")
	body := lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex.BG)).
		Foreground(lipgloss.Color(c.Hex.Text)).
		Padding(0, 1).
		Render(label)
	return bar + body
}

// SwatchFor renders an event type using the colors the scheme gives it.
func (s Scheme) SwatchFor(eventType string) string {
	h := s.HexFor(eventType)
	return Swatch(Color{Name: eventType, Hex: h}, eventType)
}

// Legend renders one swatch per type, in the given order, separated by spaces.
func (s Scheme) Legend(types []string) string {
	out := ""
	for i, t := range types {
		if i > 0 {
			out += " "
		}
		out += s.SwatchFor(t)
	}
	return out
}

// Describe returns a one-line description of a palette entry.
func Describe(c Color) string {
	return fmt.Sprintf("%-14s %s %s %s", c.Name, c.Hex.BG, c.Hex.Border, c.Hex.Text)
}
