package ics

import (
	"fmt"
	"sort"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/brendondgr/Mango-Apps/internal/calendar"
	"github.com/brendondgr/Mango-Apps/internal/dateutil"
	"github.com/brendondgr/Mango-Apps/internal/schedule"
)

// weekdays maps Monday-based day indexes onto rrule weekdays.
var weekdays = [7]rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA, rrule.SU}

// WeeklyRule returns the weekly rule of an event on weekday that starts
// at minutes past midnight, limited to the dates [start, end]. The rule's
// DTSTART is the first matching date. ok is false when no date matches.
func WeeklyRule(weekday, minutes int, start, end time.Time) (rule *rrule.RRule, ok bool, err error) {
	if weekday < 0 || weekday >= len(weekdays) {
		return nil, false, fmt.Errorf("weekday %d out of range", weekday)
	}
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{weekdays[weekday]},
		Dtstart:   at(start, minutes),
		Until:     at(end, 24*60-1),
	})
	if err != nil {
		return nil, false, fmt.Errorf("building weekly rule: %w", err)
	}
	if len(r.All()) == 0 {
		return nil, false, nil
	}
	return r, true, nil
}

// ExportRecurring writes each schedule instance of each range as one
// recurring VEVENT, plus one VEVENT per direct event. Recurring events are
// not split around direct events; use Export for the merged view.
func ExportRecurring(ranges []calendar.ScheduledRange, direct map[string][]schedule.StoredDirectEvent, opts Options) (string, error) {
	cal := newCalendar(opts)
	dtstamp := stamp(opts)

	for _, sr := range ranges {
		start, err := dateutil.ParseDate(sr.StartDate)
		if err != nil {
			return "", fmt.Errorf("range start %q: %w", sr.StartDate, err)
		}
		end, err := dateutil.ParseDate(sr.EndDate)
		if err != nil {
			return "", fmt.Errorf("range end %q: %w", sr.EndDate, err)
		}

		for i, e := range sr.Schedule.Instances() {
			day, err := schedule.NormalizeDay(e.Day)
			if err != nil {
				continue
			}
			r, ok, err := WeeklyRule(day, e.Start, start, end)
			if err != nil {
				return "", err
			}
			if !ok {
				continue
			}
			occurrences := r.All()
			first := dateutil.TruncateToDay(occurrences[0])

			uid := UID(sr.Filename, "|", sr.StartDate, "|", i)
			ev := addInstance(cal, uid, first, e, dtstamp)
			addRule(ev, day, len(occurrences))
		}
	}

	for _, date := range sortedKeys(direct) {
		day, err := dateutil.ParseDate(date)
		if err != nil {
			return "", fmt.Errorf("date %q: %w", date, err)
		}
		for _, d := range direct[date] {
			addInstance(cal, UID("direct|", d.Index, "|", date, "|", d.Start), day, d.Instance(), dtstamp)
		}
	}
	return cal.Serialize(), nil
}

// addRule writes the RRULE as a COUNT, which stays valid for the
// floating DTSTART the events use.
func addRule(ev *ical.VEvent, weekday, count int) {
	opt := rrule.ROption{
		Freq:      rrule.WEEKLY,
		Count:     count,
		Byweekday: []rrule.Weekday{weekdays[weekday]},
	}
	ev.SetProperty(ical.ComponentPropertyRrule, opt.RRuleString())
}

func sortedKeys(m map[string][]schedule.StoredDirectEvent) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
