package layout

import (
	"fmt"
	"slices"

	"github.com/brendondgr/Mango-Apps/internal/palette"
	"github.com/brendondgr/Mango-Apps/internal/schedule"
)

// Font selects a typeface for text drawn on a Surface.
type Font struct {
	Family string
	Bold   bool
	Size   float64
}

// Fonts used on the page.
var (
	FontTitle     = Font{Family: "Helvetica", Bold: true, Size: 18}
	FontSubtitle  = Font{Family: "Helvetica", Size: 12}
	FontLegend    = Font{Family: "Helvetica", Size: 10}
	FontDayLabel  = Font{Family: "Helvetica", Bold: true, Size: 12}
	FontHourLabel = Font{Family: "Helvetica", Size: 10}
	FontCellTitle = Font{Family: "Helvetica", Bold: true, Size: 10}
	FontCellBody  = Font{Family: "Helvetica", Bold: true, Size: 9}

	// legend advances are measured at 8pt
	legendMeasureFont = Font{Family: "Helvetica", Size: 8}
)

// RGB is an 8-bit color.
type RGB struct {
	R, G, B int
}

// HexRGB converts "#rrggbb" to an RGB.
func HexRGB(hex string) RGB {
	r, g, b := palette.RGB(hex)
	return RGB{r, g, b}
}

// Colors used for page furniture.
var (
	Black      = RGB{0, 0, 0}
	White      = RGB{255, 255, 255}
	Gray       = RGB{128, 128, 128}
	GridLine   = RGB{217, 217, 217}
	GridBorder = RGB{179, 179, 179}
)

// Surface is a drawing target. Coordinates are points from the top-left
// corner of the page; text is placed by its baseline.
type Surface interface {
	NewPage()
	SetFont(f Font)
	SetFillColor(c RGB)
	SetStrokeColor(c RGB)
	SetLineWidth(w float64)
	DrawRect(r Rect, fill, stroke bool)
	DrawLine(x1, y1, x2, y2 float64)
	DrawText(x, y float64, s string)
	MeasureTextWidth(s string, f Font) float64
}

// DayLabels are the column headings, Monday first.
var DayLabels = [DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Legend geometry in points.
const (
	swatchSize    = 8.64
	swatchPadding = 5.76
	legendGap     = 14.4
	legendStep    = 14.4
	legendWrapAt  = 72
)

// Document is everything needed to draw one schedule page.
type Document struct {
	Name        string
	Description string
	Events      []schedule.EventInstance
	Colors      palette.Scheme
	View        View
	// Page defaults to Letter.
	Page *Page
}

// LegendItem is one swatch of the legend.
type LegendItem struct {
	Type   string
	Colors palette.Hex
}

// PlacedCell is a cell with its rectangle, colors and fitted text.
type PlacedCell struct {
	Cell   Cell
	Rect   Rect
	Colors palette.Hex
	Text   TextFit
}

// Plan is the computed page before anything is drawn.
type Plan struct {
	Name        string
	Description string
	Page        Page
	View        View
	Grid        Grid
	Legend      []LegendItem
	Cells       []PlacedCell
}

// Layout filters, segments and positions the document's events.
// Returns an error if the view has no hours or an invalid day.
func Layout(doc Document) (*Plan, error) {
	page := Letter
	if doc.Page != nil {
		page = *doc.Page
	}
	v := doc.View.Normalize()
	if err := v.Validate(); err != nil {
		return nil, err
	}

	filtered := Filter(doc.Events, v)
	grid := NewGrid(page, v)

	plan := &Plan{
		Name:        doc.Name,
		Description: doc.Description,
		Page:        page,
		View:        v,
		Grid:        grid,
	}

	var types []string
	for _, e := range filtered {
		if !slices.Contains(types, e.Type) {
			types = append(types, e.Type)
		}
	}
	slices.Sort(types)
	for _, t := range types {
		plan.Legend = append(plan.Legend, LegendItem{Type: t, Colors: doc.Colors.HexFor(t)})
	}

	byDay := make(map[int][]schedule.EventInstance, len(v.Days))
	for _, e := range filtered {
		byDay[e.Day] = append(byDay[e.Day], e)
	}
	for _, day := range v.Days {
		for _, c := range Segment(byDay[day]) {
			r, ok := grid.CellRect(c)
			if !ok {
				continue
			}
			title := c.Event.Title
			if title == "" {
				title = c.Event.Type
			}
			timeRange := fmt.Sprintf("%s - %s", schedule.FormatTime(c.Event.Start), schedule.FormatTime(c.Event.End))
			plan.Cells = append(plan.Cells, PlacedCell{
				Cell:   c,
				Rect:   r,
				Colors: doc.Colors.HexFor(c.Event.Type),
				Text:   FitText(title, c.Event.Sub, timeRange, r.W, r.H),
			})
		}
	}
	return plan, nil
}

// Render lays out doc and draws it onto s as a single page.
func Render(s Surface, doc Document) error {
	plan, err := Layout(doc)
	if err != nil {
		return err
	}
	plan.Draw(s)
	return nil
}

// Draw emits the plan's drawing calls: header, legend, grid, then cells.
func (p *Plan) Draw(s Surface) {
	s.NewPage()
	p.drawHeader(s)
	p.drawLegend(s)
	p.drawGrid(s)
	p.drawCells(s)
}

func (p *Plan) drawHeader(s Surface) {
	y := p.Page.Margin + 21.6

	name := p.Name
	if name == "" {
		name = "Schedule"
	}
	s.SetFont(FontTitle)
	s.SetFillColor(Black)
	s.DrawText(p.Page.Margin, y, name)

	if p.Description != "" {
		s.SetFont(FontSubtitle)
		s.SetFillColor(Gray)
		s.DrawText(p.Page.Margin, y+18, p.Description)
	}
}

func (p *Plan) drawLegend(s Surface) {
	if len(p.Legend) == 0 {
		return
	}

	x := p.Page.Margin
	y := p.Grid.Top - p.Page.Legend + 10.8
	s.SetFont(FontLegend)

	for _, item := range p.Legend {
		s.SetFillColor(HexRGB(item.Colors.BG))
		s.SetStrokeColor(HexRGB(item.Colors.Border))
		s.SetLineWidth(1)
		s.DrawRect(Rect{X: x, Y: y - swatchSize/2, W: swatchSize, H: swatchSize}, true, true)

		s.SetFillColor(Black)
		s.DrawText(x+swatchSize+swatchPadding, y+2.16, item.Type)

		x += swatchSize + swatchPadding + s.MeasureTextWidth(item.Type, legendMeasureFont) + legendGap
		if x > p.Page.Width-p.Page.Margin-legendWrapAt {
			x = p.Page.Margin
			y += legendStep
		}
	}
}

func (p *Plan) drawGrid(s Surface) {
	g := p.Grid
	dayWidth := g.DayWidth()
	hourHeight := g.HourHeight()
	numHours := g.EndHour - g.StartHour

	s.SetFillColor(White)
	s.DrawRect(Rect{X: g.Left, Y: g.Top, W: g.Width, H: g.Height}, true, false)

	s.SetFont(FontDayLabel)
	s.SetFillColor(Black)
	for i, day := range g.Days {
		label := DayLabels[day]
		w := s.MeasureTextWidth(label, FontDayLabel)
		s.DrawText(g.Left+float64(i)*dayWidth+dayWidth/2-w/2, g.Top-3.6, label)
	}

	s.SetFont(FontHourLabel)
	s.SetStrokeColor(GridLine)
	s.SetLineWidth(0.5)
	for h := 0; h <= numHours; h++ {
		y := g.Top + float64(h)*hourHeight
		s.DrawLine(g.Left, y, g.Left+g.Width, y)
		if h < numHours {
			s.SetFillColor(Gray)
			s.DrawText(p.Page.Margin, y+hourHeight/2+2.16, FormatHour(g.StartHour+h))
		}
	}
	for i := 0; i <= len(g.Days); i++ {
		x := g.Left + float64(i)*dayWidth
		s.DrawLine(x, g.Top, x, g.Top+g.Height)
	}

	s.SetStrokeColor(GridBorder)
	s.SetLineWidth(1)
	s.DrawRect(Rect{X: g.Left, Y: g.Top, W: g.Width, H: g.Height}, false, true)
}

func (p *Plan) drawCells(s Surface) {
	for _, pc := range p.Cells {
		s.SetFillColor(HexRGB(pc.Colors.BG))
		s.SetStrokeColor(HexRGB(pc.Colors.Border))
		s.SetLineWidth(1)
		s.DrawRect(pc.Rect, true, true)

		s.SetFillColor(HexRGB(pc.Colors.Text))
		x := pc.Rect.X + TextInset
		y := pc.Rect.Y + LineHeight

		s.SetFont(FontCellTitle)
		for i, line := range pc.Text.Title {
			s.DrawText(x, y+float64(i*LineHeight), line)
		}

		subY := y + float64(len(pc.Text.Title)*LineHeight)
		if pc.Text.ShowSub {
			s.SetFont(FontCellBody)
			s.DrawText(x, subY, pc.Text.Sub)
		}
		if pc.Text.ShowTime {
			s.SetFont(FontCellBody)
			s.DrawText(x, subY+LineHeight, pc.Text.Time)
		}
	}
}

// FormatHour renders an hour of the day as a 12-hour label.
func FormatHour(hour int) string {
	switch {
	case hour == 0 || hour == 24:
		return "12AM"
	case hour == 12:
		return "12PM"
	case hour < 12:
		return fmt.Sprintf("%dAM", hour)
	default:
		return fmt.Sprintf("%dPM", hour-12)
	}
}
