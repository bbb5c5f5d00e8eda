package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/brendondgr/Mango-Apps/internal/calendar"
	"github.com/brendondgr/Mango-Apps/internal/config"
	"github.com/brendondgr/Mango-Apps/internal/db"
	"github.com/brendondgr/Mango-Apps/internal/jsonstore"
	"github.com/brendondgr/Mango-Apps/internal/logger"
	"github.com/brendondgr/Mango-Apps/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config *config.Config
	root   *cobra.Command
	in     io.Reader
	out    io.Writer

	// configPath is where the config command reads and saves.
	configPath string

	// Opened on first use by ensureService.
	store *jsonstore.Store
	repo  *db.SQLite
	svc   *calendar.Service

	logCloser io.Closer
	now       func() time.Time

	debug   bool   // Enable debug logging
	noColor bool   // Disable color output
	output  string // table, json or yaml
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{
		config:     cfg,
		in:         os.Stdin,
		out:        os.Stdout,
		configPath: config.DefaultConfigPath(),
		now:        time.Now,
	}

	a.root = &cobra.Command{
		Use:   "mango-calendar",
		Short: "Weekly schedules mapped onto a calendar",
		Long: `mango-calendar keeps recurring weekly schedules, maps them onto date
ranges of a calendar and layers one-off events on top.

Run without arguments to browse the calendar week by week.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			a.setupColor()
			if _, err := parseOutput(a.output); err != nil {
				return err
			}
			return a.initLogging()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runTUI()
		},
	}

	flags := a.root.PersistentFlags()
	flags.BoolVar(&a.debug, "debug", false, "Enable debug logging")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable color output")
	flags.StringVarP(&a.output, "output", "o", string(outputTable), "Output format: table, json or yaml")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.serveCmd())
	a.root.AddCommand(a.tuiCmd())
	a.root.AddCommand(a.schedulesCmd())
	a.root.AddCommand(a.colorsCmd())
	a.root.AddCommand(a.dayCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.entriesCmd())
	a.root.AddCommand(a.eventsCmd())
	a.root.AddCommand(a.exportICSCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.exportCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(a.out, "mango-calendar %s (commit: %s)\n", Version, Commit)
		},
	}
}

func (a *App) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse the calendar week by week",
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runTUI()
		},
	}
}

func (a *App) runTUI() error {
	if err := a.ensureService(); err != nil {
		return err
	}
	return tui.Run(a.svc, a.config.UI.Theme)
}

// initLogging installs the global logger once per run.
func (a *App) initLogging() error {
	if a.logCloser != nil {
		return nil
	}
	closer, err := logger.Init(logger.Config{
		Level: a.config.Log.Level,
		File:  a.config.Log.File,
		Debug: a.debug,
	})
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	a.logCloser = closer
	return nil
}

// ensureService opens the schedule and calendar stores on first use.
func (a *App) ensureService() error {
	if a.svc != nil {
		return nil
	}
	if err := a.config.EnsureDirs(); err != nil {
		return err
	}

	store, err := jsonstore.New(a.config.Storage.SchedulesDir)
	if err != nil {
		return fmt.Errorf("opening schedules: %w", err)
	}
	repo, err := db.New(a.config.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening calendar database: %w", err)
	}

	a.store = store
	a.repo = repo
	a.svc = calendar.New(store, repo, nil, logger.Logger)
	return nil
}

// Close releases the database and the log file.
func (a *App) Close() error {
	var firstErr error
	if a.repo != nil {
		firstErr = a.repo.Close()
		a.repo = nil
	}
	if a.logCloser != nil {
		if err := a.logCloser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		a.logCloser = nil
	}
	return firstErr
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
