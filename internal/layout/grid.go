package layout

import "slices"

// Page holds the fixed page measurements in points. The origin is the
// top-left corner and y grows downwards.
type Page struct {
	Width      float64
	Height     float64
	Margin     float64
	Header     float64
	Legend     float64
	TimeColumn float64
}

// Letter is US Letter in landscape with half-inch margins.
var Letter = Page{
	Width:      792,
	Height:     612,
	Margin:     36,
	Header:     36,
	Legend:     25.2,
	TimeColumn: 43.2,
}

// ContentWidth is the page width inside the margins.
func (p Page) ContentWidth() float64 {
	return p.Width - 2*p.Margin
}

// ContentHeight is the height left for the grid once the header and
// legend bands are taken.
func (p Page) ContentHeight() float64 {
	return p.Height - 2*p.Margin - p.Header - p.Legend
}

// Rect is an axis-aligned rectangle; Y is its top edge.
type Rect struct {
	X, Y, W, H float64
}

// cellPadding is the gap kept between a cell and its column edges.
const cellPadding = 2

// Grid maps weekdays and minutes onto page coordinates.
type Grid struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64

	Days      []int
	StartHour int
	EndHour   int
}

// NewGrid places the grid for a normalized, valid view.
func NewGrid(p Page, v View) Grid {
	return Grid{
		Left:      p.Margin + p.TimeColumn,
		Top:       p.Margin + p.Header + p.Legend,
		Width:     p.ContentWidth() - p.TimeColumn,
		Height:    p.ContentHeight(),
		Days:      slices.Clone(v.Days),
		StartHour: v.StartHour,
		EndHour:   v.EndHour,
	}
}

// DayWidth is the width of one weekday column.
func (g Grid) DayWidth() float64 {
	if len(g.Days) == 0 {
		return g.Width
	}
	return g.Width / float64(len(g.Days))
}

// HourHeight is the height of one hour row.
func (g Grid) HourHeight() float64 {
	n := g.EndHour - g.StartHour
	if n <= 0 {
		return g.Height
	}
	return g.Height / float64(n)
}

// Column returns the column index of a weekday, or false if the day is
// not visible.
func (g Grid) Column(day int) (int, bool) {
	i := slices.Index(g.Days, day)
	return i, i >= 0
}

// MinuteY returns the y coordinate of a clock time given in minutes.
func (g Grid) MinuteY(minutes int) float64 {
	offset := float64(minutes)/60 - float64(g.StartHour)
	return g.Top + offset*g.HourHeight()
}

// CellRect returns the rectangle of a cell. It reports false for days
// outside the grid and for cells with no height left after clipping.
func (g Grid) CellRect(c Cell) (Rect, bool) {
	col, ok := g.Column(c.Event.Day)
	if !ok {
		return Rect{}, false
	}
	top := g.MinuteY(c.Event.Start)
	bottom := g.MinuteY(c.Event.End)
	if bottom-top <= 0 {
		return Rect{}, false
	}
	return Rect{
		X: g.Left + float64(col)*g.DayWidth() + cellPadding,
		Y: top,
		W: g.DayWidth() - 2*cellPadding,
		H: bottom - top,
	}, true
}
