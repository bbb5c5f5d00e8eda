package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) importCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import-calendar <calendar.json>",
		Short: "Replace the calendar with a JSON document",
		Long: `Replace every calendar entry and direct event with the contents of a
calendar JSON document of the form {"entries": [...], "direct_events": [...]}.

The document is validated as a whole; on any error nothing changes.

Example:
  mango-calendar import-calendar ~/backup/calendar.json --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("importing replaces the whole calendar; pass --yes to confirm")
			}
			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			info, err := os.Stat(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("calendar file does not exist: %s", sourcePath)
				}
				return fmt.Errorf("checking calendar file: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("calendar file path is a directory: %s", sourcePath)
			}

			data, err := os.ReadFile(sourcePath)
			if err != nil {
				return fmt.Errorf("reading calendar file: %w", err)
			}
			if err := a.ensureService(); err != nil {
				return err
			}

			cfg, err := a.repo.ImportJSON(cmd.Context(), data)
			if err != nil {
				return err
			}
			a.svc.Names().Reset()

			fmt.Fprintf(a.out, "Imported %d entries and %d direct events from %s\n",
				len(cfg.Entries), len(cfg.DirectEvents), sourcePath)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm replacing the calendar")
	return cmd
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
