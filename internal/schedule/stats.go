package schedule

import "sort"

// StandardTypes always appear in Stats, even with zero hours.
var StandardTypes = []string{"class", "work", "exercise", "food", "commute", "other"}

// Stats holds effective hours per event type for a set of instances.
type Stats struct {
	ByCategory map[string]float64 `json:"by_category"`
	Total      float64            `json:"total"`
}

// Activity is one line of a category breakdown.
type Activity struct {
	Title string  `json:"title"`
	Sub   string  `json:"sub"`
	Day   int     `json:"day"`
	Hours float64 `json:"hours"`
}

// CalculateStats sums effective hours by type. Instances with an empty
// type count as "other".
func CalculateStats(events []EventInstance) Stats {
	stats := Stats{ByCategory: make(map[string]float64, len(StandardTypes))}
	for _, t := range StandardTypes {
		stats.ByCategory[t] = 0
	}
	for i, e := range events {
		hours := EffectiveHours(events, i)
		stats.ByCategory[typeOrOther(e.Type)] += hours
		stats.Total += hours
	}
	return stats
}

// CategoryBreakdown lists the activities of one type with their
// effective hours, in instance order. An empty type matches "other".
func CategoryBreakdown(events []EventInstance, category string) []Activity {
	out := []Activity{}
	for i, e := range events {
		if typeOrOther(e.Type) != category {
			continue
		}
		out = append(out, Activity{
			Title: e.Title,
			Sub:   e.Sub,
			Day:   e.Day,
			Hours: EffectiveHours(events, i),
		})
	}
	return out
}

// Breakdowns returns CategoryBreakdown for every type present in events.
func Breakdowns(events []EventInstance) map[string][]Activity {
	out := make(map[string][]Activity)
	for _, t := range UniqueTypes(events) {
		out[t] = CategoryBreakdown(events, t)
	}
	return out
}

// UniqueTypes returns the sorted set of types in events; an empty type
// is reported as "other".
func UniqueTypes(events []EventInstance) []string {
	seen := make(map[string]bool)
	for _, e := range events {
		seen[typeOrOther(e.Type)] = true
	}
	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func typeOrOther(t string) string {
	if t == "" {
		return "other"
	}
	return t
}
