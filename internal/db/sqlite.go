// Package db provides SQLite storage for the calendar: date-range
// entries and one-off direct events.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/brendondgr/Mango-Apps/internal/schedule"
)

// SQLite implements schedule.CalendarRepository using SQLite.
// Entries and direct events are addressed by their position in insertion
// order, which is how clients refer to them.
type SQLite struct {
	db *sql.DB
}

var _ schedule.CalendarRepository = (*SQLite)(nil)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type entryRow struct {
	id    int64
	entry schedule.CalendarEntry
}

func listEntries(ctx context.Context, q querier) ([]entryRow, error) {
	query := `
		SELECT id, start_date, end_date, schedule_filename
		FROM calendar_entries
		ORDER BY id
	`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []entryRow
	for rows.Next() {
		var r entryRow
		if err := rows.Scan(&r.id, &r.entry.StartDate, &r.entry.EndDate, &r.entry.ScheduleFilename); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}
	return out, nil
}

func entriesOf(rows []entryRow) []schedule.CalendarEntry {
	out := make([]schedule.CalendarEntry, len(rows))
	for i, r := range rows {
		out[i] = r.entry
	}
	return out
}

type directRow struct {
	id    int64
	event schedule.DirectEvent
}

const directColumns = `id, event_date, title, type, start_time, end_time, sub`

func scanDirect(rows *sql.Rows) (directRow, error) {
	var (
		r   directRow
		sub sql.NullString
	)
	err := rows.Scan(&r.id, &r.event.Date, &r.event.Title, &r.event.Type, &r.event.Start, &r.event.End, &sub)
	if err != nil {
		return directRow{}, fmt.Errorf("scanning direct event: %w", err)
	}
	r.event.Sub = sub.String
	return r, nil
}

func listDirect(ctx context.Context, q querier) ([]directRow, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+directColumns+` FROM direct_events ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying direct events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []directRow
	for rows.Next() {
		r, err := scanDirect(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating direct events: %w", err)
	}
	return out, nil
}

func directOf(rows []directRow) []schedule.DirectEvent {
	out := make([]schedule.DirectEvent, len(rows))
	for i, r := range rows {
		out[i] = r.event
	}
	return out
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// LoadCalendarConfig returns every entry and direct event in position order.
func (s *SQLite) LoadCalendarConfig(ctx context.Context) (*schedule.CalendarConfig, error) {
	entries, err := listEntries(ctx, s.db)
	if err != nil {
		return nil, err
	}
	direct, err := listDirect(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return &schedule.CalendarConfig{
		Entries:      entriesOf(entries),
		DirectEvents: directOf(direct),
	}, nil
}

// SaveCalendarConfig replaces all stored entries and direct events with
// cfg. Every entry and event is validated and entries must not overlap.
func (s *SQLite) SaveCalendarConfig(ctx context.Context, cfg *schedule.CalendarConfig) error {
	if cfg == nil {
		cfg = &schedule.CalendarConfig{}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM calendar_entries`); err != nil {
		return fmt.Errorf("clearing entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM direct_events`); err != nil {
		return fmt.Errorf("clearing direct events: %w", err)
	}

	for i, e := range cfg.Entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("entry #%d: %w", i, err)
		}
		if err := schedule.CheckEntryOverlap(cfg.Entries[:i], e, -1); err != nil {
			return fmt.Errorf("entry #%d: %w", i, err)
		}
		if err := insertEntry(ctx, tx, e); err != nil {
			return err
		}
	}
	for i, d := range cfg.DirectEvents {
		if d.Type == "" {
			d.Type = schedule.DefaultType
		}
		if err := d.Validate(); err != nil {
			return fmt.Errorf("direct event #%d: %w", i, err)
		}
		if err := schedule.CheckDirectOverlap(cfg.DirectEvents[:i], d, -1); err != nil {
			return fmt.Errorf("direct event #%d: %w", i, err)
		}
		if err := insertDirect(ctx, tx, d); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ImportJSON replaces the calendar with a calendar.json document of the
// form {"entries": [...], "direct_events": [...]}.
func (s *SQLite) ImportJSON(ctx context.Context, data []byte) (*schedule.CalendarConfig, error) {
	var cfg schedule.CalendarConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &schedule.ValidationError{Msg: "calendar file must be a JSON object with entries and direct_events", Err: err}
	}
	if err := s.SaveCalendarConfig(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func insertEntry(ctx context.Context, tx *sql.Tx, e schedule.CalendarEntry) error {
	query := `
		INSERT INTO calendar_entries (start_date, end_date, schedule_filename)
		VALUES (?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, query, e.StartDate, e.EndDate, e.ScheduleFilename); err != nil {
		return fmt.Errorf("inserting entry: %w", err)
	}
	return nil
}

func insertDirect(ctx context.Context, tx *sql.Tx, d schedule.DirectEvent) error {
	query := `
		INSERT INTO direct_events (event_date, title, type, start_time, end_time, sub)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, query, d.Date, d.Title, d.Type, d.Start, d.End, nullable(d.Sub)); err != nil {
		return fmt.Errorf("inserting direct event: %w", err)
	}
	return nil
}

// AddEntry stores a new entry and returns its index.
// Returns a *schedule.RangeError if it overlaps an existing entry.
func (s *SQLite) AddEntry(ctx context.Context, e schedule.CalendarEntry) (int, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := listEntries(ctx, tx)
	if err != nil {
		return 0, err
	}
	if err := schedule.CheckEntryOverlap(entriesOf(existing), e, -1); err != nil {
		return 0, err
	}
	if err := insertEntry(ctx, tx, e); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return len(existing), nil
}

// UpdateEntry replaces the entry at idx.
func (s *SQLite) UpdateEntry(ctx context.Context, idx int, e schedule.CalendarEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := listEntries(ctx, tx)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(existing) {
		return fmt.Errorf("%w: entry index %d out of range", schedule.ErrNotFound, idx)
	}
	if err := e.Validate(); err != nil {
		return err
	}
	if err := schedule.CheckEntryOverlap(entriesOf(existing), e, idx); err != nil {
		return err
	}

	query := `
		UPDATE calendar_entries
		SET start_date = ?, end_date = ?, schedule_filename = ?
		WHERE id = ?
	`
	if _, err := tx.ExecContext(ctx, query, e.StartDate, e.EndDate, e.ScheduleFilename, existing[idx].id); err != nil {
		return fmt.Errorf("updating entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// DeleteEntry removes the entry at idx. Later entries move up one position.
func (s *SQLite) DeleteEntry(ctx context.Context, idx int) error {
	id, err := idAt(ctx, s.db, "calendar_entries", idx)
	if err != nil {
		return fmt.Errorf("entry index %d: %w", idx, err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM calendar_entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	return nil
}

// RemoveEntriesForSchedule deletes every entry mapped onto filename and
// returns how many were removed.
func (s *SQLite) RemoveEntriesForSchedule(ctx context.Context, filename string) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM calendar_entries WHERE schedule_filename = ?`, filename)
	if err != nil {
		return 0, fmt.Errorf("removing entries: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting removed entries: %w", err)
	}
	return int(n), nil
}

// ScheduleForDate returns the schedule of the earliest entry covering
// date, or "" when no entry does.
func (s *SQLite) ScheduleForDate(ctx context.Context, date string) (string, error) {
	query := `
		SELECT schedule_filename
		FROM calendar_entries
		WHERE start_date <= ? AND end_date >= ?
		ORDER BY id
		LIMIT 1
	`

	var filename string
	err := s.db.QueryRowContext(ctx, query, date, date).Scan(&filename)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("querying schedule for date: %w", err)
	}
	return filename, nil
}

// AddDirectEvent stores a direct event and returns its index.
// Returns a *schedule.RangeError if it overlaps another direct event on
// the same date.
func (s *SQLite) AddDirectEvent(ctx context.Context, d schedule.DirectEvent) (int, error) {
	if d.Type == "" {
		d.Type = schedule.DefaultType
	}
	if err := d.Validate(); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := listDirect(ctx, tx)
	if err != nil {
		return 0, err
	}
	if err := schedule.CheckDirectOverlap(directOf(existing), d, -1); err != nil {
		return 0, err
	}
	if err := insertDirect(ctx, tx, d); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return len(existing), nil
}

// UpdateDirectEvent replaces the direct event at idx.
func (s *SQLite) UpdateDirectEvent(ctx context.Context, idx int, d schedule.DirectEvent) error {
	if d.Type == "" {
		d.Type = schedule.DefaultType
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := listDirect(ctx, tx)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(existing) {
		return fmt.Errorf("%w: event index %d out of range", schedule.ErrNotFound, idx)
	}
	if err := d.Validate(); err != nil {
		return err
	}
	if err := schedule.CheckDirectOverlap(directOf(existing), d, idx); err != nil {
		return err
	}

	query := `
		UPDATE direct_events
		SET event_date = ?, title = ?, type = ?, start_time = ?, end_time = ?, sub = ?
		WHERE id = ?
	`
	_, err = tx.ExecContext(ctx, query, d.Date, d.Title, d.Type, d.Start, d.End, nullable(d.Sub), existing[idx].id)
	if err != nil {
		return fmt.Errorf("updating direct event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// DeleteDirectEvent removes the direct event at idx.
func (s *SQLite) DeleteDirectEvent(ctx context.Context, idx int) error {
	id, err := idAt(ctx, s.db, "direct_events", idx)
	if err != nil {
		return fmt.Errorf("event index %d: %w", idx, err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM direct_events WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting direct event: %w", err)
	}
	return nil
}

// DirectEventsForDate returns the direct events on date with their indexes.
func (s *SQLite) DirectEventsForDate(ctx context.Context, date string) ([]schedule.StoredDirectEvent, error) {
	byDate, err := s.DirectEventsForRange(ctx, date, date)
	if err != nil {
		return nil, err
	}
	if events, ok := byDate[date]; ok {
		return events, nil
	}
	return []schedule.StoredDirectEvent{}, nil
}

// DirectEventsForRange groups the direct events in [start, end] by date.
// Within a date, events keep their position order.
func (s *SQLite) DirectEventsForRange(ctx context.Context, start, end string) (map[string][]schedule.StoredDirectEvent, error) {
	query := `
		SELECT idx, event_date, title, type, start_time, end_time, sub
		FROM (
			SELECT ROW_NUMBER() OVER (ORDER BY id) - 1 AS idx,
			       event_date, title, type, start_time, end_time, sub
			FROM direct_events
		)
		WHERE event_date >= ? AND event_date <= ?
		ORDER BY idx
	`

	rows, err := s.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying direct events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string][]schedule.StoredDirectEvent)
	for rows.Next() {
		var (
			idx int
			d   schedule.DirectEvent
			sub sql.NullString
		)
		if err := rows.Scan(&idx, &d.Date, &d.Title, &d.Type, &d.Start, &d.End, &sub); err != nil {
			return nil, fmt.Errorf("scanning direct event: %w", err)
		}
		d.Sub = sub.String
		out[d.Date] = append(out[d.Date], schedule.StoredDirectEvent{DirectEvent: d, Index: idx})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating direct events: %w", err)
	}
	return out, nil
}

// idAt returns the row id at position idx of table in id order.
// table is always a package constant.
func idAt(ctx context.Context, q querier, table string, idx int) (int64, error) {
	if idx < 0 {
		return 0, fmt.Errorf("%w: index out of range", schedule.ErrNotFound)
	}
	var id int64
	err := q.QueryRowContext(ctx, `SELECT id FROM `+table+` ORDER BY id LIMIT 1 OFFSET ?`, idx).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: index out of range", schedule.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("looking up row: %w", err)
	}
	return id, nil
}
