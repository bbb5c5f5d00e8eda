package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/brendondgr/Mango-Apps/internal/palette"
	"github.com/brendondgr/Mango-Apps/internal/schedule"
)

// outputFormat selects how commands print their results.
type outputFormat string

const (
	outputTable outputFormat = "table"
	outputJSON  outputFormat = "json"
	outputYAML  outputFormat = "yaml"
)

func parseOutput(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(s)); f {
	case outputTable, outputJSON, outputYAML:
		return f, nil
	case "":
		return outputTable, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

// emit writes v as JSON or YAML, or runs table for the table format.
func (a *App) emit(v any, table func(w io.Writer)) error {
	f, err := parseOutput(a.output)
	if err != nil {
		return err
	}
	switch f {
	case outputJSON:
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		return encodeYAML(a.out, v)
	default:
		table(a.out)
		return nil
	}
}

// encodeYAML writes v as YAML using its JSON field names and custom
// JSON encodings, so both machine formats agree.
func encodeYAML(w io.Writer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlNumbers(generic)); err != nil {
		return err
	}
	return enc.Close()
}

// yamlNumbers turns json.Number values into ints or floats so YAML does
// not quote them.
func yamlNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, x := range t {
			t[k] = yamlNumbers(x)
		}
		return t
	case []any:
		for i, x := range t {
			t[i] = yamlNumbers(x)
		}
		return t
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	default:
		return v
	}
}

// FormatDuration formats minutes as a human-readable duration.
func FormatDuration(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}

// HoursBar draws part/total as a bar of the given width.
func HoursBar(part, total float64, width int) string {
	if total <= 0 {
		return strings.Repeat("░", width)
	}
	filled := int(part / total * float64(width))
	filled = max(0, min(width, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// eventSymbol marks where an event came from: ● schedule, ◆ direct,
// ◐ a schedule event cut around a direct one.
func eventSymbol(e schedule.EventInstance) string {
	switch {
	case e.Source == schedule.SourceDirect:
		return formatDirect("◆")
	case e.Split != schedule.SplitNone:
		return formatSchedule("◐")
	default:
		return formatSchedule("●")
	}
}

// typeLabel renders an event type as a palette swatch, or as plain
// brackets when color is off.
func typeLabel(scheme palette.Scheme, typ string) string {
	if typ == "" {
		typ = schedule.DefaultType
	}
	if color.NoColor {
		return "[" + typ + "]"
	}
	return scheme.SwatchFor(typ)
}

// printEventRow prints one event: symbol, time range, title and type.
// minutes is the event's effective length.
func printEventRow(w io.Writer, e schedule.EventInstance, scheme palette.Scheme, minutes, titleWidth int) {
	title := e.Title
	if e.Sub != "" {
		title += " (" + e.Sub + ")"
	}
	title = ansi.Truncate(title, titleWidth, "…")

	fmt.Fprintf(w, "  %s  %s-%s  %-*s  %s  %s\n",
		eventSymbol(e),
		schedule.FormatTime(e.Start), schedule.FormatTime(e.End),
		titleWidth, title,
		typeLabel(scheme, e.Type),
		formatMuted(FormatDuration(minutes)),
	)
}

// titleWidth fits titles to the terminal, within [20, 60].
func titleWidth() int {
	// "  ●  HH:MM-HH:MM  " plus type and duration columns.
	return max(20, min(60, termWidth()-45))
}
