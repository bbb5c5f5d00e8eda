// Package jsonstore keeps schedules as JSON documents in a directory,
// one file per schedule.
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/brendondgr/Mango-Apps/internal/palette"
	"github.com/brendondgr/Mango-Apps/internal/schedule"
)

// Store implements schedule.ScheduleRepository on a directory of files.
type Store struct {
	dir string
	// mu serializes read-modify-write cycles within this process.
	mu sync.Mutex
}

var _ schedule.ScheduleRepository = (*Store)(nil)

// New returns a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating schedules directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the store reads and writes.
func (s *Store) Dir() string {
	return s.dir
}

var unsafeChars = regexp.MustCompile(`[\\/*?:"<>|]`)

// SanitizeFilename strips path separators and shell-unsafe characters
// and makes sure the name ends in ".json".
func SanitizeFilename(name string) string {
	safe := strings.TrimSpace(unsafeChars.ReplaceAllString(name, ""))
	if !strings.HasSuffix(strings.ToLower(safe), ".json") {
		safe += ".json"
	}
	return safe
}

func (s *Store) path(name string) (string, string) {
	safe := SanitizeFilename(name)
	return safe, filepath.Join(s.dir, safe)
}

func notFound(safe string) error {
	return fmt.Errorf("schedule '%s': %w", safe, schedule.ErrNotFound)
}

// ListSchedules returns the names of all schedule files, sorted.
func (s *Store) ListSchedules(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing schedules: %w", err)
	}

	names := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ScheduleExists reports whether the named schedule file is present.
func (s *Store) ScheduleExists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, p := s.path(name)
	_, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking schedule: %w", err)
	}
	return true, nil
}

// LoadSchedule reads and validates a schedule. A schedule stored without
// color mappings gets default mappings, which are written back so the
// assignment stays fixed from then on.
func (s *Store) LoadSchedule(ctx context.Context, name string) (*schedule.Schedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	safe, p := s.path(name)
	sched, err := s.read(safe, p)
	if err != nil {
		return nil, err
	}

	if sched.ColorMappings == nil {
		sched.ColorMappings = palette.DefaultMappings(sched.Types())
		if err := s.write(p, sched); err != nil {
			return nil, fmt.Errorf("saving migrated color mappings: %w", err)
		}
	}
	return sched, nil
}

// SaveSchedule validates sched and writes it under the sanitized name,
// which is returned.
func (s *Store) SaveSchedule(ctx context.Context, name string, sched *schedule.Schedule) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if sched == nil {
		return "", &schedule.ValidationError{Msg: "schedule is required"}
	}
	if err := sched.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	safe, p := s.path(name)
	if err := s.write(p, sched); err != nil {
		return "", err
	}
	return safe, nil
}

// DeleteSchedule removes the schedule file.
func (s *Store) DeleteSchedule(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	safe, p := s.path(name)
	err := os.Remove(p)
	if errors.Is(err, fs.ErrNotExist) {
		return notFound(safe)
	}
	if err != nil {
		return fmt.Errorf("deleting schedule: %w", err)
	}
	return nil
}

// AddEvent appends a template to the schedule and returns its index.
func (s *Store) AddEvent(ctx context.Context, name string, t schedule.EventTemplate) (int, error) {
	if err := validateTemplate(t); err != nil {
		return 0, err
	}
	var idx int
	err := s.modify(ctx, name, func(sched *schedule.Schedule) (*schedule.Schedule, error) {
		next := sched.WithEvent(t)
		idx = len(next.Events) - 1
		return next, nil
	})
	return idx, err
}

// UpdateEvent replaces the template at idx.
func (s *Store) UpdateEvent(ctx context.Context, name string, idx int, t schedule.EventTemplate) error {
	if err := validateTemplate(t); err != nil {
		return err
	}
	return s.modify(ctx, name, func(sched *schedule.Schedule) (*schedule.Schedule, error) {
		return sched.WithEventAt(idx, t)
	})
}

// DeleteEvent removes the template at idx.
func (s *Store) DeleteEvent(ctx context.Context, name string, idx int) error {
	return s.modify(ctx, name, func(sched *schedule.Schedule) (*schedule.Schedule, error) {
		return sched.WithoutEvent(idx)
	})
}

// UpdateColorMappings replaces the schedule's type to color mapping.
func (s *Store) UpdateColorMappings(ctx context.Context, name string, mappings map[string]string) error {
	if mappings == nil {
		mappings = map[string]string{}
	}
	if err := schedule.ValidateColorMappings(mappings); err != nil {
		return err
	}
	return s.modify(ctx, name, func(sched *schedule.Schedule) (*schedule.Schedule, error) {
		next := sched.Clone()
		next.ColorMappings = mappings
		return next, nil
	})
}

func validateTemplate(t schedule.EventTemplate) error {
	if t == nil {
		return &schedule.ValidationError{Msg: "event is required"}
	}
	return t.Validate()
}

// modify loads the schedule without migrating it, applies fn and writes
// the result back.
func (s *Store) modify(ctx context.Context, name string, fn func(*schedule.Schedule) (*schedule.Schedule, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	safe, p := s.path(name)
	sched, err := s.read(safe, p)
	if err != nil {
		return err
	}
	next, err := fn(sched)
	if err != nil {
		return err
	}
	return s.write(p, next)
}

func (s *Store) read(safe, p string) (*schedule.Schedule, error) {
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound(safe)
	}
	if err != nil {
		return nil, fmt.Errorf("reading schedule: %w", err)
	}
	sched, err := schedule.DecodeSchedule(data)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule data in '%s': %w", safe, err)
	}
	return sched, nil
}

// write stores sched through a temporary file and a rename, so readers
// never see a partial document.
func (s *Store) write(p string, sched *schedule.Schedule) error {
	data, err := json.MarshalIndent(sched, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ".schedule-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing schedule: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("replacing schedule: %w", err)
	}
	return nil
}
