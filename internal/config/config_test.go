package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Listen != "127.0.0.1:9999" {
		t.Errorf("expected listen 127.0.0.1:9999, got %s", cfg.Server.Listen)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected log level warn, got %s", cfg.Log.Level)
	}
	if cfg.Export.StartHour != 0 || cfg.Export.EndHour != 24 {
		t.Errorf("expected export hours 0-24, got %d-%d", cfg.Export.StartHour, cfg.Export.EndHour)
	}
	if cfg.UI.Theme != "mocha" {
		t.Errorf("expected theme mocha, got %s", cfg.UI.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Derived paths live under the data directory
	if want := filepath.Join(cfg.Storage.DataDir, "schedules"); cfg.Storage.SchedulesDir != want {
		t.Errorf("expected schedules_dir %s, got %s", want, cfg.Storage.SchedulesDir)
	}
	if want := filepath.Join(cfg.Storage.DataDir, "calendar.db"); cfg.Storage.DBPath != want {
		t.Errorf("expected db_path %s, got %s", want, cfg.Storage.DBPath)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[storage]
data_dir = "/srv/mango"
db_path = "/var/lib/mango/cal.db"

[server]
listen = ":8080"

[log]
level = "debug"
file = "/var/log/mango.log"

[export]
start_hour = 7
end_hour = 21
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage.SchedulesDir != filepath.Join("/srv/mango", "schedules") {
		t.Errorf("expected schedules_dir under data_dir, got %s", cfg.Storage.SchedulesDir)
	}
	if cfg.Storage.DBPath != "/var/lib/mango/cal.db" {
		t.Errorf("expected db_path from file, got %s", cfg.Storage.DBPath)
	}
	if cfg.Server.Listen != ":8080" {
		t.Errorf("expected listen :8080, got %s", cfg.Server.Listen)
	}
	if cfg.Log.Level != "debug" || cfg.Log.File != "/var/log/mango.log" {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}
	if cfg.Export.StartHour != 7 || cfg.Export.EndHour != 21 {
		t.Errorf("expected export hours 7-21, got %d-%d", cfg.Export.StartHour, cfg.Export.EndHour)
	}
	// Not set in the file
	if cfg.UI.Theme != "mocha" {
		t.Errorf("expected default theme, got %s", cfg.UI.Theme)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[server]
listen = ":8080"

[log]
level = "info"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("MANGO_CAL_LISTEN", ":9000")
	t.Setenv("MANGO_CAL_DATA_DIR", "/data")
	t.Setenv("MANGO_CAL_EXPORT_END_HOUR", "20")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Env should override file
	if cfg.Server.Listen != ":9000" {
		t.Errorf("expected listen :9000 from env, got %s", cfg.Server.Listen)
	}
	// File value should be kept when no env override
	if cfg.Log.Level != "info" {
		t.Errorf("expected log level info from file, got %s", cfg.Log.Level)
	}
	// Env should override default
	if cfg.Storage.DBPath != filepath.Join("/data", "calendar.db") {
		t.Errorf("expected db_path under env data_dir, got %s", cfg.Storage.DBPath)
	}
	if cfg.Export.EndHour != 20 {
		t.Errorf("expected end_hour 20 from env, got %d", cfg.Export.EndHour)
	}
}

func TestLoadFrom_BadEnvHour(t *testing.T) {
	t.Setenv("MANGO_CAL_EXPORT_START_HOUR", "seven")

	if _, err := LoadFrom("/nonexistent/path/config.toml"); err == nil {
		t.Error("expected error for non-numeric hour")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty data dir", func(c *Config) { c.Storage.DataDir = "" }},
		{"empty listen", func(c *Config) { c.Server.Listen = "" }},
		{"unknown log level", func(c *Config) { c.Log.Level = "chatty" }},
		{"inverted export hours", func(c *Config) { c.Export.StartHour, c.Export.EndHour = 18, 8 }},
		{"end hour past midnight", func(c *Config) { c.Export.EndHour = 25 }},
		{"negative start hour", func(c *Config) { c.Export.StartHour = -1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/test.db", filepath.Join(home, "test.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := expandPath(tc.input)
			if got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := Default()
	cfg.Storage.DataDir = filepath.Join(tmpDir, "data")
	cfg.Storage.DBPath = filepath.Join(tmpDir, "db", "calendar.db")
	cfg.resolvePaths()

	if err := cfg.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs failed: %v", err)
	}
	for _, dir := range []string{cfg.Storage.SchedulesDir, filepath.Join(tmpDir, "db")} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("expected directory %s", dir)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	cfg := Default()
	cfg.Server.Listen = "0.0.0.0:7000"
	cfg.Export.StartHour = 6
	cfg.UI.Theme = "latte"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Server.Listen != "0.0.0.0:7000" {
		t.Errorf("expected listen 0.0.0.0:7000, got %s", loaded.Server.Listen)
	}
	if loaded.Export.StartHour != 6 {
		t.Errorf("expected start_hour 6, got %d", loaded.Export.StartHour)
	}
	if loaded.UI.Theme != "latte" {
		t.Errorf("expected theme latte, got %s", loaded.UI.Theme)
	}
}
