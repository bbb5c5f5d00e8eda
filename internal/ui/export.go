package ui

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brendondgr/Mango-Apps/internal/dateutil"
	"github.com/brendondgr/Mango-Apps/internal/ics"
)

func (a *App) exportICSCmd() *cobra.Command {
	var (
		start, end string
		recurring  bool
		out        string
	)

	cmd := &cobra.Command{
		Use:   "export-ics",
		Short: "Export a date range as an iCalendar file",
		Long: `Export the merged calendar between two dates as iCalendar.

By default every date's events are written out one by one. With
--recurring, schedule events become weekly RRULE series over each
calendar entry and direct events are written on their own.

Example:
  mango-calendar export-ics --start 2025-01-13 --end 2025-03-30 --out spring.ics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if start == "" {
				monday, _ := dateutil.WeekRange(a.now())
				start = dateutil.FormatDate(monday)
			}
			if end == "" {
				_, sunday := dateutil.WeekRange(a.now())
				end = dateutil.FormatDate(sunday)
			}
			if err := a.ensureService(); err != nil {
				return err
			}

			ctx := cmd.Context()
			opts := ics.Options{Name: "mango-calendar", Stamp: a.now()}
			var body string
			if recurring {
				ranges, direct, err := a.svc.ScheduledRanges(ctx, start, end)
				if err != nil {
					return err
				}
				if body, err = ics.ExportRecurring(ranges, direct, opts); err != nil {
					return err
				}
			} else {
				view, err := a.svc.Range(ctx, start, end)
				if err != nil {
					return err
				}
				if body, err = ics.Export(view, opts); err != nil {
					return err
				}
			}

			if out == "" || out == "-" {
				_, err := fmt.Fprint(a.out, body)
				return err
			}
			if err := os.WriteFile(out, []byte(body), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintf(a.out, "Wrote %s\n", out)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&start, "start", "", "First date, YYYY-MM-DD (default this Monday)")
	f.StringVar(&end, "end", "", "Last date, YYYY-MM-DD (default this Sunday)")
	f.BoolVar(&recurring, "recurring", false, "Write schedule events as weekly recurring series")
	f.StringVar(&out, "out", "", "Output file (default stdout)")
	return cmd
}

func (a *App) exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export-calendar",
		Short: "Write calendar entries and direct events as JSON",
		Long: `Write every calendar entry and direct event as one JSON document, the
same format import-calendar reads.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureService(); err != nil {
				return err
			}
			cfg, err := a.svc.CalendarConfig(cmd.Context())
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			data = append(data, '\n')

			if out == "" || out == "-" {
				_, err := a.out.Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintf(a.out, "Exported %d entries and %d direct events to %s\n",
				len(cfg.Entries), len(cfg.DirectEvents), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Output file (default stdout)")
	return cmd
}
