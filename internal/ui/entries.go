package ui

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/brendondgr/Mango-Apps/internal/jsonstore"
	"github.com/brendondgr/Mango-Apps/internal/schedule"
)

func (a *App) entriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entries",
		Aliases: []string{"entry"},
		Short:   "Map date ranges onto schedules",
		Long: `Calendar entries map an inclusive date range onto a schedule.
Entries may not overlap, and are addressed by the index 'entries list' shows.
Schedule names get a .json suffix when they lack one.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List calendar entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureService(); err != nil {
				return err
			}
			cfg, err := a.svc.CalendarConfig(cmd.Context())
			if err != nil {
				return err
			}
			entries := cfg.Entries
			if entries == nil {
				entries = []schedule.CalendarEntry{}
			}
			return a.emit(entries, func(w io.Writer) {
				if len(entries) == 0 {
					fmt.Fprintln(w, "No calendar entries.")
					return
				}
				for i, e := range entries {
					fmt.Fprintf(w, "%3d  %s to %s  %s %s\n", i, e.StartDate, e.EndDate,
						formatSchedule(e.ScheduleFilename),
						formatMuted(a.svc.Names().Get(cmd.Context(), e.ScheduleFilename)))
				}
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <start-date> <end-date> <schedule>",
		Short: "Map a date range onto a schedule",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureService(); err != nil {
				return err
			}
			idx, err := a.svc.AddEntry(cmd.Context(), schedule.CalendarEntry{
				StartDate:        args[0],
				EndDate:          args[1],
				ScheduleFilename: jsonstore.SanitizeFilename(args[2]),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Calendar entry added at index %d\n", idx)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "update <index> <start-date> <end-date> <schedule>",
		Short: "Replace a calendar entry",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			if err := a.ensureService(); err != nil {
				return err
			}
			err = a.svc.UpdateEntry(cmd.Context(), idx, schedule.CalendarEntry{
				StartDate:        args[1],
				EndDate:          args[2],
				ScheduleFilename: jsonstore.SanitizeFilename(args[3]),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Calendar entry updated")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <index>",
		Short: "Delete a calendar entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			if err := a.ensureService(); err != nil {
				return err
			}
			if err := a.svc.DeleteEntry(cmd.Context(), idx); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Calendar entry deleted")
			return nil
		},
	})
	return cmd
}

func (a *App) eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "events",
		Aliases: []string{"event"},
		Short:   "Manage one-off events pinned to a date",
		Long: `Direct events belong to one date and always win over schedule events,
which are cut around them. Direct events on the same date may not overlap.`,
	}

	cmd.AddCommand(a.eventsListCmd())

	var typ, sub string
	add := &cobra.Command{
		Use:   "add <date> <start> <end> <title>",
		Short: "Add a direct event",
		Example: `  mango-calendar events add 2025-01-15 14:00 15:30 "Dentist" --type other
  mango-calendar events add tomorrow 09:00 10:00 "Review" --type work`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.directEventArgs(args, typ, sub)
			if err != nil {
				return err
			}
			if err := a.ensureService(); err != nil {
				return err
			}
			idx, err := a.svc.AddDirectEvent(cmd.Context(), d)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Direct event added at index %d\n", idx)
			return nil
		},
	}
	add.Flags().StringVarP(&typ, "type", "t", "", "Event type (default other)")
	add.Flags().StringVar(&sub, "sub", "", "Subtitle")
	cmd.AddCommand(add)

	var updTyp, updSub string
	update := &cobra.Command{
		Use:   "update <index> <date> <start> <end> <title>",
		Short: "Replace a direct event",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			d, err := a.directEventArgs(args[1:], updTyp, updSub)
			if err != nil {
				return err
			}
			if err := a.ensureService(); err != nil {
				return err
			}
			if err := a.svc.UpdateDirectEvent(cmd.Context(), idx, d); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Direct event updated")
			return nil
		},
	}
	update.Flags().StringVarP(&updTyp, "type", "t", "", "Event type (default other)")
	update.Flags().StringVar(&updSub, "sub", "", "Subtitle")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <index>",
		Short: "Delete a direct event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			if err := a.ensureService(); err != nil {
				return err
			}
			if err := a.svc.DeleteDirectEvent(cmd.Context(), idx); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Direct event deleted")
			return nil
		},
	})
	return cmd
}

func (a *App) eventsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List direct events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureService(); err != nil {
				return err
			}
			cfg, err := a.svc.CalendarConfig(cmd.Context())
			if err != nil {
				return err
			}
			events := cfg.DirectEvents
			if events == nil {
				events = []schedule.DirectEvent{}
			}
			return a.emit(events, func(w io.Writer) {
				if len(events) == 0 {
					fmt.Fprintln(w, "No direct events.")
					return
				}
				for i, d := range events {
					title := d.Title
					if d.Sub != "" {
						title += " (" + d.Sub + ")"
					}
					fmt.Fprintf(w, "%3d  %s  %s-%s  %s [%s]\n", i, d.Date, d.Start, d.End,
						formatDirect(title), d.Type)
				}
			})
		},
	}
}

// directEventArgs builds a direct event from date, start, end and title
// arguments. The date accepts the same forms as the day command.
func (a *App) directEventArgs(args []string, typ, sub string) (schedule.DirectEvent, error) {
	date, err := a.dateArg(args[:1])
	if err != nil {
		return schedule.DirectEvent{}, err
	}
	return schedule.NewDirectEvent(date.Format("2006-01-02"), args[3], typ, args[1], args[2], sub)
}
