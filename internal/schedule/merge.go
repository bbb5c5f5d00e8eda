package schedule

import (
	"cmp"
	"slices"
)

// SplitAround returns what remains of sched once direct is placed over it:
// zero, one or two segments. A non-overlapping direct event leaves sched
// unchanged.
func SplitAround(sched, direct EventInstance) []EventInstance {
	if !RangesOverlap(sched.Start, sched.End, direct.Start, direct.End) {
		return []EventInstance{sched}
	}

	var out []EventInstance
	if sched.Start < direct.Start {
		before := sched.WithSpan(sched.Start, min(sched.End, direct.Start)).WithSplit(SplitBefore)
		if before.Minutes() > 0 {
			out = append(out, before)
		}
	}
	if sched.End > direct.End {
		after := sched.WithSpan(max(sched.Start, direct.End), sched.End).WithSplit(SplitAfter)
		if after.Minutes() > 0 {
			out = append(out, after)
		}
	}
	return out
}

// ProcessOverlaps folds every schedule event over the direct events in
// start order, splitting segments that a direct event lands on.
func ProcessOverlaps(schedule, direct []EventInstance) []EventInstance {
	ordered := sortedByStart(direct)

	var out []EventInstance
	for _, sched := range schedule {
		segments := []EventInstance{sched}
		for _, d := range ordered {
			next := make([]EventInstance, 0, len(segments)+1)
			for _, seg := range segments {
				next = append(next, SplitAround(seg, d)...)
			}
			segments = next
		}
		out = append(out, segments...)
	}
	return out
}

// MergeDay combines one date's schedule instances with its direct events.
// Direct events are never split. The result is sorted by start time and
// ties keep schedule events ahead of direct ones.
func MergeDay(schedule, direct []EventInstance) []EventInstance {
	tagged := make([]EventInstance, len(schedule))
	for i, e := range schedule {
		tagged[i] = e.WithSource(SourceSchedule)
	}
	directTagged := make([]EventInstance, len(direct))
	for i, e := range direct {
		directTagged[i] = e.WithSource(SourceDirect)
	}

	if len(directTagged) == 0 {
		return sortedByStart(tagged)
	}

	merged := ProcessOverlaps(tagged, directTagged)
	merged = append(merged, directTagged...)
	return sortedByStart(merged)
}

func sortedByStart(events []EventInstance) []EventInstance {
	out := make([]EventInstance, len(events))
	copy(out, events)
	slices.SortStableFunc(out, func(a, b EventInstance) int {
		return cmp.Compare(a.Start, b.Start)
	})
	return out
}
