package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/brendondgr/Mango-Apps/internal/dateutil"
	"github.com/brendondgr/Mango-Apps/internal/jsonstore"
	"github.com/brendondgr/Mango-Apps/internal/layout"
	"github.com/brendondgr/Mango-Apps/internal/palette"
	"github.com/brendondgr/Mango-Apps/internal/schedule"
)

func (a *App) schedulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schedules",
		Aliases: []string{"schedule", "s"},
		Short:   "Manage weekly schedules",
	}
	cmd.AddCommand(
		a.schedulesListCmd(),
		a.schedulesShowCmd(),
		a.schedulesStatsCmd(),
		a.schedulesImportCmd(),
		a.schedulesDeleteCmd(),
		a.schedulesPrintCmd(),
		a.schedulesColorsCmd(),
		a.schedulesEventCmd(),
	)
	return cmd
}

func (a *App) schedulesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored schedules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureService(); err != nil {
				return err
			}
			names, err := a.svc.ListSchedules(cmd.Context())
			if err != nil {
				return err
			}
			if names == nil {
				names = []string{}
			}
			return a.emit(names, func(w io.Writer) {
				if len(names) == 0 {
					fmt.Fprintln(w, "No schedules stored.")
					return
				}
				for _, n := range names {
					fmt.Fprintf(w, "%s  %s\n", n, formatMuted(a.svc.Names().Get(cmd.Context(), n)))
				}
			})
		},
	}
}

func (a *App) schedulesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <schedule>",
		Short: "Show a schedule's events day by day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureService(); err != nil {
				return err
			}
			view, err := a.svc.ScheduleView(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.emit(view, func(w io.Writer) {
				doc := view.Schedule
				fmt.Fprintln(w, formatHeader(doc.Name))
				if doc.Description != "" {
					fmt.Fprintln(w, formatMuted(doc.Description))
				}
				width := titleWidth()
				for day := range layout.DaysPerWeek {
					var idx []int
					for i, e := range doc.Events {
						if e.Day == day {
							idx = append(idx, i)
						}
					}
					if len(idx) == 0 {
						continue
					}
					fmt.Fprintf(w, "\n%s\n", formatHeader(dateutil.DayName(day)))
					for _, i := range idx {
						fmt.Fprintf(w, "%s", formatMuted(fmt.Sprintf("%3d", doc.Events[i].OriginalIdx)))
						printEventRow(w, doc.Events[i], view.Colors, schedule.EffectiveMinutes(doc.Events, i), width)
					}
				}
			})
		},
	}
}

func (a *App) schedulesStatsCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "stats <schedule>",
		Short: "Show effective hours per category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureService(); err != nil {
				return err
			}
			view, err := a.svc.ScheduleView(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if category != "" {
				acts := view.Breakdowns[category]
				if acts == nil {
					acts = []schedule.Activity{}
				}
				return a.emit(acts, func(w io.Writer) { printBreakdown(w, category, acts) })
			}
			return a.emit(view.Stats, func(w io.Writer) {
				fmt.Fprintln(w, formatHeader(view.Schedule.Name))
				printStats(w, view.Stats)
			})
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "List the activities of one category")
	return cmd
}

func printBreakdown(w io.Writer, category string, acts []schedule.Activity) {
	fmt.Fprintln(w, formatHeader(category))
	if len(acts) == 0 {
		fmt.Fprintln(w, formatMuted("  no activities"))
		return
	}
	for _, act := range acts {
		title := act.Title
		if act.Sub != "" {
			title += " (" + act.Sub + ")"
		}
		fmt.Fprintf(w, "  %-3s %-40s %s\n", dateutil.DayShortName(act.Day), title,
			FormatDuration(hoursToMinutes(act.Hours)))
	}
}

func (a *App) schedulesImportCmd() *cobra.Command {
	var as string

	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Validate and store a schedule file",
		Long: `Read a schedule JSON document, validate it and store it.

The stored filename defaults to the file's base name.

Example:
  mango-calendar schedules import ~/Downloads/work.json --as work`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading schedule: %w", err)
			}
			sched, err := schedule.DecodeSchedule(data)
			if err != nil {
				return fmt.Errorf("invalid schedule %s: %w", path, err)
			}
			if as == "" {
				as = filepath.Base(path)
			}
			if err := a.ensureService(); err != nil {
				return err
			}
			saved, err := a.svc.SaveSchedule(cmd.Context(), as, sched)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Imported %q (%d events) as %s\n", sched.Name, len(sched.Events), saved)
			return nil
		},
	}
	cmd.Flags().StringVar(&as, "as", "", "Filename to store the schedule under")
	return cmd
}

func (a *App) schedulesDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <schedule>",
		Short: "Delete a schedule and its calendar entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("deleting a schedule also removes its calendar entries; pass --yes to confirm")
			}
			if err := a.ensureService(); err != nil {
				return err
			}
			name := jsonstore.SanitizeFilename(args[0])
			removed, err := a.svc.DeleteSchedule(cmd.Context(), name)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted %s (%d calendar entries removed)\n", name, removed)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deletion")
	return cmd
}

func (a *App) schedulesPrintCmd() *cobra.Command {
	var (
		out       string
		startHour int
		endHour   int
		days      []string
		hide      []string
	)

	cmd := &cobra.Command{
		Use:   "print <schedule>",
		Short: "Render a schedule as a one-page PDF",
		Long: `Render a schedule's week grid as a landscape PDF.

Examples:
  mango-calendar schedules print work
  mango-calendar schedules print work --start-hour 7 --end-hour 20 --days mon-fri --hide food`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dayIdx, err := parseDays(days)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("start-hour") {
				startHour = a.config.Export.StartHour
			}
			if !cmd.Flags().Changed("end-hour") {
				endHour = a.config.Export.EndHour
			}
			if err := a.ensureService(); err != nil {
				return err
			}

			data, filename, err := a.svc.PrintSchedule(cmd.Context(), args[0], layout.View{
				StartHour: startHour,
				EndHour:   endHour,
				Days:      dayIdx,
				Hidden:    hide,
			})
			if err != nil {
				return err
			}
			if out == "" {
				out = filename
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("writing pdf: %w", err)
			}
			fmt.Fprintf(a.out, "Wrote %s (%d bytes)\n", out, len(data))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&out, "out", "", "Output file (default: derived from the schedule name)")
	f.IntVar(&startHour, "start-hour", 0, "First visible hour (default from config)")
	f.IntVar(&endHour, "end-hour", layout.HoursPerDay, "End of the visible window (default from config)")
	f.StringSliceVar(&days, "days", nil, "Visible days, e.g. mon,wed or mon-fri (default all)")
	f.StringSliceVar(&hide, "hide", nil, "Event types to leave out")
	return cmd
}

var dayAbbrev = map[string]int{
	"mon": 0, "tue": 1, "wed": 2, "thu": 3, "fri": 4, "sat": 5, "sun": 6,
}

// parseDays turns day names, indexes (0=Mon) and ranges like mon-fri
// into Monday-based indexes.
func parseDays(parts []string) ([]int, error) {
	var out []int
	for _, part := range parts {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		from, to, isRange := strings.Cut(part, "-")
		first, err := parseDay(from)
		if err != nil {
			return nil, err
		}
		last := first
		if isRange {
			if last, err = parseDay(to); err != nil {
				return nil, err
			}
		}
		if last < first {
			return nil, fmt.Errorf("invalid day range %q", part)
		}
		for d := first; d <= last; d++ {
			out = append(out, d)
		}
	}
	return out, nil
}

func parseDay(s string) (int, error) {
	if d, ok := dayAbbrev[s]; ok {
		return d, nil
	}
	if len(s) > 3 {
		if d, ok := dayAbbrev[s[:3]]; ok && strings.EqualFold(dateutil.DayName(d), s) {
			return d, nil
		}
	}
	d, err := strconv.Atoi(s)
	if err != nil || d < 0 || d >= layout.DaysPerWeek {
		return 0, fmt.Errorf("invalid day %q (use mon..sun or 0..6)", s)
	}
	return d, nil
}

func (a *App) schedulesColorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "colors <schedule> [type=color ...]",
		Short: "Show or set a schedule's type colors",
		Long: `Without assignments, show the color of each event type in the schedule.
With assignments, replace the schedule's color mappings.

Example:
  mango-calendar schedules colors work work=teal exercise=lime`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureService(); err != nil {
				return err
			}
			ctx := cmd.Context()
			name := args[0]

			if len(args) > 1 {
				mappings := make(map[string]string, len(args)-1)
				for _, kv := range args[1:] {
					typ, col, ok := strings.Cut(kv, "=")
					if !ok || typ == "" || col == "" {
						return fmt.Errorf("invalid mapping %q, want type=color", kv)
					}
					mappings[typ] = col
				}
				if err := a.svc.UpdateColorMappings(ctx, name, mappings); err != nil {
					return err
				}
			}

			sched, err := a.svc.LoadSchedule(ctx, name)
			if err != nil {
				return err
			}
			scheme := sched.Colors()
			return a.emit(sched.ColorMappings, func(w io.Writer) {
				types := make([]string, 0, len(scheme))
				for t := range scheme {
					types = append(types, t)
				}
				sort.Strings(types)
				for _, t := range types {
					fmt.Fprintf(w, "%-12s %s %s\n", t, typeLabel(scheme, t), formatMuted(sched.ColorMappings[t]))
				}
			})
		},
	}
}

func (a *App) colorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "colors",
		Short: "List the color palette",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.emit(palette.Colors, func(w io.Writer) {
				for _, c := range palette.Colors {
					if color.NoColor {
						fmt.Fprintln(w, palette.Describe(c))
						continue
					}
					fmt.Fprintf(w, "%s %s\n", palette.Swatch(c, "  "), palette.Describe(c))
				}
			})
		},
	}
}

func (a *App) schedulesEventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Add, replace or delete a schedule's event templates",
		Long: `Edit event templates by their index as listed by 'schedules show'.

Templates are JSON, either the legacy form
  {"title":"Gym","type":"exercise","day":[0,2,4],"start":"07:00","end":"08:00"}
or the timestamped form
  {"title":"Class","type":"class","timestamps":[{"day":1,"start":"09:00","end":"10:30"}]}`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <schedule> <json>",
		Short: "Append an event template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := schedule.DecodeTemplate([]byte(args[1]))
			if err != nil {
				return err
			}
			if err := a.ensureService(); err != nil {
				return err
			}
			idx, err := a.svc.AddEvent(cmd.Context(), args[0], t)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Event added at index %d\n", idx)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "update <schedule> <index> <json>",
		Short: "Replace an event template",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			t, err := schedule.DecodeTemplate([]byte(args[2]))
			if err != nil {
				return err
			}
			if err := a.ensureService(); err != nil {
				return err
			}
			if err := a.svc.UpdateEvent(cmd.Context(), args[0], idx, t); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Event updated")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <schedule> <index>",
		Short: "Delete an event template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			if err := a.ensureService(); err != nil {
				return err
			}
			if err := a.svc.DeleteEvent(cmd.Context(), args[0], idx); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Event deleted")
			return nil
		},
	})
	return cmd
}

func parseIndex(s string) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil || idx < 0 {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	return idx, nil
}
