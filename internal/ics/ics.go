// Package ics exports calendar views as iCalendar documents.
package ics

import (
	"fmt"
	"sort"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/brendondgr/Mango-Apps/internal/calendar"
	"github.com/brendondgr/Mango-Apps/internal/dateutil"
	"github.com/brendondgr/Mango-Apps/internal/schedule"
)

// ProductID identifies the exporter in PRODID.
const ProductID = "-//Mango-Apps//mango-calendar//EN"

// floatingLayout writes local wall-clock times without a zone.
const floatingLayout = "20060102T150405"

// uidNamespace seeds the name-based UIDs, so exporting the same calendar
// twice yields the same UIDs.
var uidNamespace = uuid.MustParse("6f1d3c2e-8a47-4b0e-9c55-2f6a1e7d4b90")

// Options controls document metadata.
type Options struct {
	// Name is written as X-WR-CALNAME when set.
	Name string
	// Stamp is the DTSTAMP of every event. Zero means now.
	Stamp time.Time
}

func newCalendar(opts Options) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)
	if opts.Name != "" {
		cal.SetXWRCalName(opts.Name)
	}
	return cal
}

func stamp(opts Options) time.Time {
	if opts.Stamp.IsZero() {
		return time.Now().UTC()
	}
	return opts.Stamp.UTC()
}

// UID returns the stable identifier of one exported event.
func UID(parts ...any) string {
	return uuid.NewSHA1(uidNamespace, []byte(fmt.Sprint(parts...))).String() + "@mango-calendar"
}

// at returns the wall-clock time minutes after midnight of day.
func at(day time.Time, minutes int) time.Time {
	return day.Add(time.Duration(minutes) * time.Minute)
}

func addInstance(cal *ical.Calendar, uid string, day time.Time, e schedule.EventInstance, dtstamp time.Time) *ical.VEvent {
	ev := cal.AddEvent(uid)
	ev.SetDtStampTime(dtstamp)
	ev.SetProperty(ical.ComponentPropertyDtStart, at(day, e.Start).Format(floatingLayout))
	ev.SetProperty(ical.ComponentPropertyDtEnd, at(day, e.End).Format(floatingLayout))
	ev.SetSummary(e.Title)
	if e.Sub != "" {
		ev.SetDescription(e.Sub)
	}
	typ := e.Type
	if typ == "" {
		typ = schedule.DefaultType
	}
	ev.SetProperty(ical.ComponentPropertyCategories, typ)
	return ev
}

// Export writes every merged event of r as its own VEVENT. Split schedule
// segments and direct events appear exactly as the calendar view shows them.
func Export(r *calendar.RangeView, opts Options) (string, error) {
	cal := newCalendar(opts)
	dtstamp := stamp(opts)

	for _, date := range rangeDates(r) {
		day, err := dateutil.ParseDate(date)
		if err != nil {
			return "", fmt.Errorf("date %q: %w", date, err)
		}
		for i, e := range r.Days[date].Events {
			uid := UID(date, "|", e.Source, "|", i, "|", e.Start, "|", e.Title)
			addInstance(cal, uid, day, e, dtstamp)
		}
	}
	return cal.Serialize(), nil
}

func rangeDates(r *calendar.RangeView) []string {
	if len(r.Dates) > 0 {
		return r.Dates
	}
	dates := make([]string, 0, len(r.Days))
	for d := range r.Days {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}
