// Package summary provides shared week summary utilities.
package summary

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/brendondgr/Mango-Apps/internal/calendar"
	"github.com/brendondgr/Mango-Apps/internal/dateutil"
	"github.com/brendondgr/Mango-Apps/internal/palette"
	"github.com/brendondgr/Mango-Apps/internal/schedule"
)

// WeekSummary holds a merged calendar week and its effective hours.
type WeekSummary struct {
	Start time.Time      `json:"start"`
	End   time.Time      `json:"end"`
	Days  []DaySummary   `json:"days"`
	Stats schedule.Stats `json:"stats"`
	// Colors covers every event type that appears in the week.
	Colors palette.Scheme `json:"colors"`
}

// DaySummary is one date of the week.
type DaySummary struct {
	Date         time.Time                `json:"date"`
	ScheduleName string                   `json:"schedule_name,omitempty"`
	Events       []schedule.EventInstance `json:"events"`
	Hours        float64                  `json:"hours"`
}

// Weeker returns the merged week around a date.
type Weeker interface {
	Week(ctx context.Context, date string) (*calendar.WeekView, error)
}

// SummarizeWeek builds week summary data from a merged week view.
// Statistics count effective hours: the part of an overwriteable event
// covered by a fixed one is not counted.
func SummarizeWeek(w *calendar.WeekView) (*WeekSummary, error) {
	start, err := dateutil.ParseDate(w.WeekStart)
	if err != nil {
		return nil, fmt.Errorf("week start: %w", err)
	}
	end, err := dateutil.ParseDate(w.WeekEnd)
	if err != nil {
		return nil, fmt.Errorf("week end: %w", err)
	}

	sum := &WeekSummary{
		Start:  start,
		End:    end,
		Stats:  schedule.CalculateStats(nil),
		Colors: w.Colors,
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day := w.Days[dateutil.FormatDate(d)]
		dayStats := schedule.CalculateStats(day.Events)
		for typ, h := range dayStats.ByCategory {
			sum.Stats.ByCategory[typ] += h
		}
		sum.Stats.Total += dayStats.Total
		sum.Days = append(sum.Days, DaySummary{
			Date:         d,
			ScheduleName: day.ScheduleName,
			Events:       day.Events,
			Hours:        dayStats.Total,
		})
	}
	return sum, nil
}

// BuildWeekSummary loads the week containing weekOf and summarizes it.
// A zero weekOf means this week.
func BuildWeekSummary(ctx context.Context, src Weeker, weekOf time.Time) (*WeekSummary, error) {
	if weekOf.IsZero() {
		weekOf = time.Now()
	}
	w, err := src.Week(ctx, dateutil.FormatDate(weekOf))
	if err != nil {
		return nil, fmt.Errorf("loading week: %w", err)
	}
	return SummarizeWeek(w)
}

// EventCount returns the number of events across the week.
func (s *WeekSummary) EventCount() int {
	n := 0
	for _, d := range s.Days {
		n += len(d.Events)
	}
	return n
}

// Categories returns the types with non-zero hours, busiest first.
// Ties are broken by name.
func (s *WeekSummary) Categories() []string {
	var out []string
	for typ, h := range s.Stats.ByCategory {
		if h > 0 {
			out = append(out, typ)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		hi, hj := s.Stats.ByCategory[out[i]], s.Stats.ByCategory[out[j]]
		if hi != hj {
			return hi > hj
		}
		return out[i] < out[j]
	})
	return out
}

// Text renders the summary as plain text, suitable for pasting.
func (s *WeekSummary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Week %s - %s\n", s.Start.Format("Mon Jan 2"), s.End.Format("Mon Jan 2, 2006"))

	for _, d := range s.Days {
		b.WriteString("\n")
		header := d.Date.Format("Mon Jan 2")
		if d.ScheduleName != "" {
			header += " (" + d.ScheduleName + ")"
		}
		b.WriteString(header + "\n")
		if len(d.Events) == 0 {
			b.WriteString("  nothing scheduled\n")
			continue
		}
		for _, e := range d.Events {
			fmt.Fprintf(&b, "  %s-%s  %s [%s]\n",
				schedule.FormatTime(e.Start), schedule.FormatTime(e.End), e.Title, typeOrOther(e.Type))
		}
	}

	b.WriteString("\n")
	var parts []string
	for _, typ := range s.Categories() {
		parts = append(parts, fmt.Sprintf("%s %s", typ, FormatHours(s.Stats.ByCategory[typ])))
	}
	if len(parts) == 0 {
		b.WriteString("Total: 0h\n")
	} else {
		fmt.Fprintf(&b, "Total: %s (%s)\n", FormatHours(s.Stats.Total), strings.Join(parts, ", "))
	}
	return b.String()
}

// FormatHours renders hours with at most one decimal, dropping ".0".
func FormatHours(h float64) string {
	s := fmt.Sprintf("%.1f", h)
	return strings.TrimSuffix(s, ".0") + "h"
}

func typeOrOther(t string) string {
	if t == "" {
		return schedule.DefaultType
	}
	return t
}
