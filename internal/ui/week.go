package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/brendondgr/Mango-Apps/internal/calendar"
	"github.com/brendondgr/Mango-Apps/internal/summary"
)

var (
	clipboardWriteAll = clipboard.WriteAll
	// copyToClipboard is swapped out in tests.
	copyToClipboard = clipboardWriteAll
)

func (a *App) weekCmd() *cobra.Command {
	var copyText bool

	cmd := &cobra.Command{
		Use:   "week [date]",
		Short: "Show the week around a date",
		Long: `Display the Monday to Sunday week containing a date (default today)
with effective hours per category.

Use --copy to put a plain-text summary of the week on the clipboard.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.dateArg(args)
			if err != nil {
				return err
			}
			if err := a.ensureService(); err != nil {
				return err
			}

			sum, err := summary.BuildWeekSummary(cmd.Context(), a.svc, date)
			if err != nil {
				return fmt.Errorf("building week summary: %w", err)
			}

			if copyText {
				if err := copyToClipboard(sum.Text()); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
			}

			if err := a.emit(sum, func(w io.Writer) { printWeek(w, sum) }); err != nil {
				return err
			}
			if copyText {
				fmt.Fprintln(a.out, formatMuted("Week copied to clipboard"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyText, "copy", false, "Copy a text summary to the clipboard")
	return cmd
}

func printWeek(w io.Writer, sum *summary.WeekSummary) {
	header := fmt.Sprintf("WEEK: %s - %s", sum.Start.Format("Mon Jan 2"), sum.End.Format("Mon Jan 2, 2006"))
	rule := strings.Repeat("─", min(74, termWidth()))
	fmt.Fprintf(w, "\n  %s\n", formatHeader(header))
	fmt.Fprintln(w, rule)

	for i, d := range sum.Days {
		if i > 0 {
			fmt.Fprintln(w)
		}
		printDay(w, d.Date, calendar.DayEvents{ScheduleName: d.ScheduleName, Events: d.Events}, sum.Colors, false)
	}

	fmt.Fprintln(w, rule)
	if sum.EventCount() == 0 {
		fmt.Fprintln(w, "No events scheduled for this week.")
		return
	}
	printStats(w, sum.Stats)
}
