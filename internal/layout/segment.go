package layout

import (
	"github.com/brendondgr/Mango-Apps/internal/schedule"
)

// Stacking order of cells. Higher values are drawn later.
const (
	ZOverwriteable = 5
	ZFixed         = 10
)

// Cell is one rectangle to draw for an event. Overwriteable events that
// sit under fixed events are broken into several cells, one per visible
// gap.
type Cell struct {
	Event schedule.EventInstance
	Z     int

	// Segment is set when the cell is part of a broken-up event.
	Segment      bool
	SegmentIndex int
	SegmentCount int
	// OriginalStart and OriginalEnd are the event's span before it was
	// broken up, in minutes.
	OriginalStart int
	OriginalEnd   int
}

// Segment lays out one day's events. Fixed events come first, whole, in
// input order. Each overwriteable event follows as the parts of it that
// no fixed event covers. Nothing is removed from the input: unlike a day
// merge, an event covered completely simply yields no cells.
func Segment(dayEvents []schedule.EventInstance) []Cell {
	var fixed []schedule.EventInstance
	var soft []schedule.EventInstance
	for _, e := range dayEvents {
		if e.Overwriteable {
			soft = append(soft, e)
		} else {
			fixed = append(fixed, e)
		}
	}

	cells := make([]Cell, 0, len(dayEvents))
	for _, e := range fixed {
		cells = append(cells, Cell{Event: e, Z: ZFixed, OriginalStart: e.Start, OriginalEnd: e.End})
	}

	for _, e := range soft {
		var occluders [][2]int
		for _, f := range fixed {
			if schedule.RangesOverlap(e.Start, e.End, f.Start, f.End) {
				occluders = append(occluders, [2]int{f.Start, f.End})
			}
		}
		if len(occluders) == 0 {
			cells = append(cells, Cell{Event: e, Z: ZOverwriteable, OriginalStart: e.Start, OriginalEnd: e.End})
			continue
		}

		parts := schedule.VisibleSegments(e.Start, e.End, occluders)
		for i, p := range parts {
			cells = append(cells, Cell{
				Event:         e.WithSpan(p[0], p[1]),
				Z:             ZOverwriteable,
				Segment:       true,
				SegmentIndex:  i,
				SegmentCount:  len(parts),
				OriginalStart: e.Start,
				OriginalEnd:   e.End,
			})
		}
	}
	return cells
}
