package ui

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/brendondgr/Mango-Apps/internal/calendar"
	"github.com/brendondgr/Mango-Apps/internal/dateutil"
	"github.com/brendondgr/Mango-Apps/internal/palette"
	"github.com/brendondgr/Mango-Apps/internal/schedule"
)

func (a *App) dayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "day [date]",
		Short: "Show the events of one day",
		Long: `Display one calendar date: the schedule mapped onto it merged with
its direct events.

The date defaults to today and accepts YYYY-MM-DD, today, yesterday,
tomorrow, weekday names and next-<weekday>.

Examples:
  mango-calendar day
  mango-calendar day friday
  mango-calendar day 2025-01-15 -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.dateArg(args)
			if err != nil {
				return err
			}
			if err := a.ensureService(); err != nil {
				return err
			}

			view, err := a.svc.Day(cmd.Context(), dateutil.FormatDate(date))
			if err != nil {
				return err
			}
			return a.emit(view, func(w io.Writer) {
				printDay(w, date, view.DayEvents, view.Colors, true)
			})
		},
	}
}

// dateArg parses an optional date argument relative to the app clock.
func (a *App) dateArg(args []string) (time.Time, error) {
	var s string
	if len(args) > 0 {
		s = args[0]
	}
	return dateutil.ParseDateArg(s, a.now())
}

// printDay prints the header, event rows and, with stats, the effective
// hours of one date.
func printDay(w io.Writer, date time.Time, day calendar.DayEvents, colors palette.Scheme, stats bool) {
	header := date.Format("Monday, January 2, 2006")
	if day.ScheduleName != "" {
		header += "  " + formatMuted("("+day.ScheduleName+")")
	}
	fmt.Fprintf(w, "%s\n", formatHeader(header))

	if len(day.Events) == 0 {
		fmt.Fprintln(w, formatMuted("  nothing scheduled"))
		return
	}

	width := titleWidth()
	for i, e := range day.Events {
		printEventRow(w, e, colors, schedule.EffectiveMinutes(day.Events, i), width)
	}
	if stats {
		fmt.Fprintln(w)
		printStats(w, schedule.CalculateStats(day.Events))
	}
}

// printStats prints non-zero category totals with a bar each.
func printStats(w io.Writer, st schedule.Stats) {
	cats := sortedCategories(st)
	if len(cats) == 0 {
		return
	}
	for _, t := range cats {
		h := st.ByCategory[t]
		fmt.Fprintf(w, "  %-10s %s %s\n", t, HoursBar(h, st.Total, 20), FormatDuration(hoursToMinutes(h)))
	}
	fmt.Fprintf(w, "  %s\n", formatStats("Total: "+FormatDuration(hoursToMinutes(st.Total))))
}

func hoursToMinutes(h float64) int {
	return int(h*60 + 0.5)
}

// sortedCategories returns the categories with hours, most hours first.
func sortedCategories(st schedule.Stats) []string {
	var out []string
	for t, h := range st.ByCategory {
		if h > 0 {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b string) int {
		if c := cmp.Compare(st.ByCategory[b], st.ByCategory[a]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return out
}
