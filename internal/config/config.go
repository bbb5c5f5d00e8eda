// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Server  ServerConfig  `toml:"server"`
	Log     LogConfig     `toml:"log"`
	Export  ExportConfig  `toml:"export"`
	UI      UIConfig      `toml:"ui"`
}

// StorageConfig holds data locations. Empty schedule and database paths
// are placed under DataDir.
type StorageConfig struct {
	DataDir      string `toml:"data_dir"`
	SchedulesDir string `toml:"schedules_dir"` // schedule JSON files
	DBPath       string `toml:"db_path"`       // calendar entries and direct events
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Listen string `toml:"listen"` // e.g., "127.0.0.1:9999"
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
	File  string `toml:"file"`  // empty logs to stderr
}

// ExportConfig holds the default hour window of printed schedules.
type ExportConfig struct {
	StartHour int `toml:"start_hour"`
	EndHour   int `toml:"end_hour"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte", "light"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		Server: ServerConfig{
			Listen: "127.0.0.1:9999",
		},
		Log: LogConfig{
			Level: "warn",
		},
		Export: ExportConfig{
			StartHour: 0,
			EndHour:   24,
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// defaultDataDir returns the default data directory.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "mango-calendar"
	}
	return filepath.Join(home, ".local", "share", "mango-calendar")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "mango-calendar", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.resolvePaths()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	// Storage overrides
	if v := os.Getenv("MANGO_CAL_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("MANGO_CAL_SCHEDULES_DIR"); v != "" {
		cfg.Storage.SchedulesDir = v
	}
	if v := os.Getenv("MANGO_CAL_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("MANGO_CAL_LISTEN"); v != "" {
		cfg.Server.Listen = v
	}

	// Log overrides
	if v := os.Getenv("MANGO_CAL_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("MANGO_CAL_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}

	// Export overrides
	if v := os.Getenv("MANGO_CAL_EXPORT_START_HOUR"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MANGO_CAL_EXPORT_START_HOUR: %w", err)
		}
		cfg.Export.StartHour = n
	}
	if v := os.Getenv("MANGO_CAL_EXPORT_END_HOUR"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MANGO_CAL_EXPORT_END_HOUR: %w", err)
		}
		cfg.Export.EndHour = n
	}

	if v := os.Getenv("MANGO_CAL_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	return nil
}

// resolvePaths expands ~ and fills empty paths from DataDir.
func (c *Config) resolvePaths() {
	c.Storage.DataDir = expandPath(c.Storage.DataDir)
	if c.Storage.SchedulesDir == "" {
		c.Storage.SchedulesDir = filepath.Join(c.Storage.DataDir, "schedules")
	}
	if c.Storage.DBPath == "" {
		c.Storage.DBPath = filepath.Join(c.Storage.DataDir, "calendar.db")
	}
	c.Storage.SchedulesDir = expandPath(c.Storage.SchedulesDir)
	c.Storage.DBPath = expandPath(c.Storage.DBPath)
	c.Log.File = expandPath(c.Log.File)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Storage.DataDir == "" {
		return errors.New("data_dir must be set")
	}
	if c.Server.Listen == "" {
		return errors.New("listen must be set")
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	if c.Export.StartHour < 0 || c.Export.EndHour > 24 || c.Export.StartHour >= c.Export.EndHour {
		return fmt.Errorf("export hours must satisfy 0 <= start_hour < end_hour <= 24, got %d-%d",
			c.Export.StartHour, c.Export.EndHour)
	}
	return nil
}

// EnsureDirs creates the data, schedule and database directories.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.Storage.DataDir, c.Storage.SchedulesDir, filepath.Dir(c.Storage.DBPath)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
