package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS calendar_entries (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			start_date        TEXT NOT NULL,
			end_date          TEXT NOT NULL,
			schedule_filename TEXT NOT NULL,
			created_at        DATETIME DEFAULT CURRENT_TIMESTAMP,
			CHECK (start_date <= end_date)
		);

		CREATE INDEX IF NOT EXISTS idx_entries_range ON calendar_entries(start_date, end_date);
		CREATE INDEX IF NOT EXISTS idx_entries_schedule ON calendar_entries(schedule_filename);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating calendar_entries table: %w", err)
	}

	query = `
		CREATE TABLE IF NOT EXISTS direct_events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			event_date TEXT NOT NULL,
			title      TEXT NOT NULL,
			type       TEXT NOT NULL DEFAULT 'other',
			start_time TEXT NOT NULL,
			end_time   TEXT NOT NULL,
			sub        TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_direct_events_date ON direct_events(event_date);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating direct_events table: %w", err)
	}

	return nil
}
