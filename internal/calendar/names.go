package calendar

import (
	"context"
	"strings"
	"sync"

	"github.com/brendondgr/Mango-Apps/internal/schedule"
)

// NameCache remembers the display name of each schedule file so calendar
// views do not reread every schedule for every day. It must be invalidated
// whenever a schedule is saved or deleted.
type NameCache struct {
	repo schedule.ScheduleRepository

	mu    sync.RWMutex
	names map[string]string
}

// NewNameCache creates an empty cache backed by repo.
func NewNameCache(repo schedule.ScheduleRepository) *NameCache {
	return &NameCache{repo: repo, names: make(map[string]string)}
}

// Get returns the schedule's name. A schedule that cannot be loaded is
// named after its filename without the .json extension.
func (c *NameCache) Get(ctx context.Context, filename string) string {
	if filename == "" {
		return ""
	}

	c.mu.RLock()
	name, ok := c.names[filename]
	c.mu.RUnlock()
	if ok {
		return name
	}

	name = strings.TrimSuffix(filename, ".json")
	if s, err := c.repo.LoadSchedule(ctx, filename); err == nil && s.Name != "" {
		name = s.Name
	}

	c.mu.Lock()
	c.names[filename] = name
	c.mu.Unlock()
	return name
}

// Invalidate forgets one schedule.
func (c *NameCache) Invalidate(filename string) {
	c.mu.Lock()
	delete(c.names, filename)
	c.mu.Unlock()
}

// Reset forgets every schedule.
func (c *NameCache) Reset() {
	c.mu.Lock()
	c.names = make(map[string]string)
	c.mu.Unlock()
}

// Len reports how many names are cached.
func (c *NameCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.names)
}
