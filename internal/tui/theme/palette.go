package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/brendondgr/Mango-Apps/internal/palette"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Schedule    lipgloss.Color
	Direct      lipgloss.Color
	Today       lipgloss.Color
	Warning     lipgloss.Color

	TextOnAccent lipgloss.Color
	TextOnToday  lipgloss.Color

	// Light reports whether the theme has a light background.
	Light bool
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}
	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Schedule:    lipgloss.Color(t.Schedule),
		Direct:      lipgloss.Color(t.Direct),
		Today:       lipgloss.Color(t.Today),
		Warning:     lipgloss.Color(t.Warning),

		TextOnAccent: lipgloss.Color(palette.ReadableText(t.Accent, t.Fg, t.Bg)),
		TextOnToday:  lipgloss.Color(palette.ReadableText(t.Today, t.Fg, t.Bg)),

		Light: isLight(t.Bg),
	}
}

// EventColors returns the background and text colors for an event type,
// toned towards the theme background so blocks stay readable on dark
// themes.
func (p *Palette) EventColors(h palette.Hex) (bg, fg lipgloss.Color) {
	if p.Light {
		return lipgloss.Color(h.BG), lipgloss.Color(h.Text)
	}
	dark := Blend(h.Border, string(p.Bg), 0.55)
	return lipgloss.Color(dark), lipgloss.Color(palette.ReadableText(dark, string(p.Fg), string(p.Bg)))
}

// Blend mixes a towards b by ratio, which is clamped to [0, 1].
func Blend(a, b string, ratio float64) string {
	ratio = max(0, min(1, ratio))
	ar, ag, ab := palette.RGB(a)
	br, bg, bb := palette.RGB(b)
	mix := func(x, y int) int {
		return int(float64(x)*(1-ratio) + float64(y)*ratio + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x", mix(ar, br), mix(ag, bg), mix(ab, bb))
}

func isLight(bg string) bool {
	r, g, b := palette.RGB(bg)
	return (r*299+g*587+b*114)/1000 > 140
}
