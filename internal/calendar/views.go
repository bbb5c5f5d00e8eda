package calendar

import (
	"github.com/brendondgr/Mango-Apps/internal/palette"
	"github.com/brendondgr/Mango-Apps/internal/schedule"
)

// ScheduleDoc is a schedule with its templates expanded into instances.
// Each instance carries the index of the template it came from, which is
// how editors address templates.
type ScheduleDoc struct {
	Name          string                   `json:"name"`
	Description   string                   `json:"description,omitempty"`
	Events        []schedule.EventInstance `json:"events"`
	ColorMappings map[string]string        `json:"color_mappings"`
}

// ScheduleView is a schedule with its colors and statistics.
type ScheduleView struct {
	Schedule   ScheduleDoc                    `json:"schedule"`
	Colors     palette.Scheme                 `json:"colors"`
	Stats      schedule.Stats                 `json:"stats"`
	Breakdowns map[string][]schedule.Activity `json:"breakdowns"`
}

// DayEvents is one calendar date: the schedule mapped onto it and the
// merged schedule and direct events.
type DayEvents struct {
	ScheduleFilename string                   `json:"schedule_filename"`
	ScheduleName     string                   `json:"schedule_name"`
	ScheduleColor    *palette.ScheduleColor   `json:"schedule_color"`
	Events           []schedule.EventInstance `json:"events"`
}

// DateView is a single calendar date.
type DateView struct {
	Date string `json:"date"`
	DayEvents
	Colors palette.Scheme `json:"colors"`
}

// WeekView is the Monday to Sunday week around a date.
type WeekView struct {
	WeekStart string               `json:"week_start"`
	WeekEnd   string               `json:"week_end"`
	Days      map[string]DayEvents `json:"days"`
	Colors    palette.Scheme       `json:"colors"`
}

// RangeView is an inclusive run of calendar dates.
type RangeView struct {
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
	Days      map[string]DayEvents `json:"days"`
	Colors    palette.Scheme       `json:"colors"`
	// Dates lists the keys of Days in order.
	Dates []string `json:"-"`
}

// ScheduledRange is a calendar entry clipped to a requested window,
// together with its loaded schedule.
type ScheduledRange struct {
	StartDate string
	EndDate   string
	Filename  string
	Schedule  *schedule.Schedule
}
