package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brendondgr/Mango-Apps/internal/config"
	"github.com/brendondgr/Mango-Apps/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  mango-calendar config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runConfigInteractive()
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.emit(a.config, func(io.Writer) {
				a.printConfig(a.config)
			})
		},
	})
	return cmd
}

func (a *App) runConfigInteractive() error {
	fmt.Fprintf(a.out, "Config file: %s\n\n", a.configPath)

	cfg, err := config.LoadFrom(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(a.configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(a.out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(a.configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(a.out, "Created %s\n\n", a.configPath)
	}

	a.printConfig(cfg)

	reader := bufio.NewReader(a.in)
	if !a.promptYesNo(reader, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Storage.DataDir = a.promptValue(reader, "Data directory", cfg.Storage.DataDir)
	cfg.Storage.SchedulesDir = a.promptValue(reader, "Schedules directory", cfg.Storage.SchedulesDir)
	cfg.Storage.DBPath = a.promptValue(reader, "Database path", cfg.Storage.DBPath)
	cfg.Server.Listen = a.promptValue(reader, "Listen address", cfg.Server.Listen)
	cfg.Log.Level = a.promptValue(reader, "Log level (debug, info, warn, error)", cfg.Log.Level)
	cfg.Log.File = a.promptValue(reader, "Log file (empty for stderr)", cfg.Log.File)
	cfg.Export.StartHour = a.promptHour(reader, "Print start hour", cfg.Export.StartHour)
	cfg.Export.EndHour = a.promptHour(reader, "Print end hour", cfg.Export.EndHour)
	cfg.UI.Theme = a.promptTheme(reader, cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(a.configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(a.out, "\nConfiguration saved!")
	return nil
}

func (a *App) printConfig(cfg *config.Config) {
	w := a.out
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[storage]")
	fmt.Fprintf(w, "  data_dir      = %s\n", cfg.Storage.DataDir)
	fmt.Fprintf(w, "  schedules_dir = %s\n", cfg.Storage.SchedulesDir)
	fmt.Fprintf(w, "  db_path       = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(w, "\n[server]")
	fmt.Fprintf(w, "  listen        = %s\n", cfg.Server.Listen)
	fmt.Fprintln(w, "\n[log]")
	fmt.Fprintf(w, "  level         = %s\n", cfg.Log.Level)
	if cfg.Log.File != "" {
		fmt.Fprintf(w, "  file          = %s\n", cfg.Log.File)
	}
	fmt.Fprintln(w, "\n[export]")
	fmt.Fprintf(w, "  start_hour    = %d\n", cfg.Export.StartHour)
	fmt.Fprintf(w, "  end_hour      = %d\n", cfg.Export.EndHour)
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  theme         = %s\n", cfg.UI.Theme)
}

func (a *App) promptYesNo(reader *bufio.Reader, question string) bool {
	fmt.Fprintf(a.out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func (a *App) promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Fprintf(a.out, "  %s: ", label)
	} else {
		fmt.Fprintf(a.out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func (a *App) promptHour(reader *bufio.Reader, label string, current int) int {
	for {
		value := a.promptValue(reader, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil && n >= 0 && n <= 24 {
			return n
		}
		fmt.Fprintf(a.out, "  Invalid hour %q. Use 0-24.\n", value)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}

func (a *App) promptTheme(reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(a.promptValue(reader, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(a.out, "  Invalid theme %q. Available: %s\n", value, options)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}
