package schedule

// Expand flattens validated templates into one instance per
// (template, timestamp, day). Output keeps template order, then
// timestamp order, then day-list order.
func Expand(templates []EventTemplate) []EventInstance {
	out := make([]EventInstance, 0, len(templates))
	for idx, tmpl := range templates {
		switch t := tmpl.(type) {
		case LegacyEventTemplate:
			out = appendSlot(out, t.EventBase, idx, t.Day, t.Start, t.End)
		case TimestampedEventTemplate:
			for _, ts := range t.Timestamps {
				out = appendSlot(out, t.EventBase, idx, ts.Day, ts.Start, ts.End)
			}
		}
	}
	return out
}

func appendSlot(out []EventInstance, base EventBase, idx int, days DaySpec, start, end string) []EventInstance {
	for _, d := range days.days {
		day, err := NormalizeDay(d)
		if err != nil {
			// unreachable for validated templates
			continue
		}
		out = append(out, EventInstance{
			Title:         base.Title,
			Type:          base.Type,
			Sub:           base.Sub,
			Day:           day,
			Start:         TimeToMinutes(start),
			End:           TimeToMinutes(end),
			Overwriteable: base.Overwriteable,
			OriginalIdx:   idx,
			DirectIndex:   -1,
		})
	}
	return out
}

// EventsForDay returns the instances that fall on weekday (0..6).
// A stored 7 matches Sunday.
func EventsForDay(instances []EventInstance, weekday int) []EventInstance {
	var out []EventInstance
	for _, e := range instances {
		d, err := NormalizeDay(e.Day)
		if err != nil {
			continue
		}
		if d == weekday {
			out = append(out, e)
		}
	}
	return out
}
