package schedule

import (
	"cmp"
	"slices"
)

// span is a half-open minute interval.
type span struct {
	start, end int
}

// EffectiveMinutes returns how much of events[i] stays visible once the
// non-overwriteable events of the same day are drawn over it.
// Non-overwriteable events always keep their full length.
func EffectiveMinutes(events []EventInstance, i int) int {
	evt := events[i]
	if !evt.Overwriteable {
		return evt.Minutes()
	}

	occluders := occludersOf(events, i)
	if len(occluders) == 0 {
		return evt.Minutes()
	}

	total := 0
	for _, gap := range visibleGaps(evt.Start, evt.End, occluders) {
		total += gap.end - gap.start
	}
	return total
}

// EffectiveHours is EffectiveMinutes in hours.
func EffectiveHours(events []EventInstance, i int) float64 {
	return float64(EffectiveMinutes(events, i)) / 60
}

// occludersOf collects the spans of same-day, non-overwriteable events
// overlapping events[i], sorted by start. events[i] itself is skipped by
// position so identical duplicates still occlude each other.
func occludersOf(events []EventInstance, i int) []span {
	evt := events[i]
	var out []span
	for j, other := range events {
		if j == i || other.Overwriteable || other.Day != evt.Day {
			continue
		}
		if RangesOverlap(evt.Start, evt.End, other.Start, other.End) {
			out = append(out, span{other.Start, other.End})
		}
	}
	slices.SortStableFunc(out, func(a, b span) int {
		return cmp.Compare(a.start, b.start)
	})
	return out
}

// visibleGaps sweeps a cursor across [start, end) and returns the parts
// not covered by the sorted occluders.
func visibleGaps(start, end int, occluders []span) []span {
	var gaps []span
	cursor := start
	for _, o := range occluders {
		if cursor < o.start {
			gaps = append(gaps, span{cursor, min(o.start, end)})
		}
		cursor = max(cursor, o.end)
	}
	if cursor < end {
		gaps = append(gaps, span{cursor, end})
	}
	return gaps
}

// VisibleSegments returns the uncovered pieces of [start, end) given
// arbitrary occluding intervals, which need not be sorted.
func VisibleSegments(start, end int, occluders [][2]int) [][2]int {
	spans := make([]span, 0, len(occluders))
	for _, o := range occluders {
		if RangesOverlap(start, end, o[0], o[1]) {
			spans = append(spans, span{o[0], o[1]})
		}
	}
	slices.SortStableFunc(spans, func(a, b span) int {
		return cmp.Compare(a.start, b.start)
	})
	if len(spans) == 0 {
		return [][2]int{{start, end}}
	}
	gaps := visibleGaps(start, end, spans)
	out := make([][2]int, len(gaps))
	for i, g := range gaps {
		out[i] = [2]int{g.start, g.end}
	}
	return out
}
