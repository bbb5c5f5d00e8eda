// Package palette holds the fixed event-type color palette and the
// schedule accent colors used by the calendar views.
package palette

import (
	"encoding/json"
	"hash/fnv"
	"sort"
)

// Classes are the Tailwind utility classes the web grid uses for an event type.
type Classes struct {
	BG     string `json:"bg"`
	Border string `json:"border"`
	Text   string `json:"text"`
	Hover  string `json:"hover"`
}

// Hex holds the literal colors used when drawing outside the browser.
type Hex struct {
	BG     string `json:"bgHex"`
	Border string `json:"borderHex"`
	Text   string `json:"textHex"`
}

// Color is one named palette entry.
type Color struct {
	Name    string
	Classes Classes
	Hex     Hex
}

// MarshalJSON flattens the entry into the color picker's shape:
// name, class names and hex values side by side.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name string `json:"name"`
		Classes
		Hex
	}{c.Name, c.Classes, c.Hex})
}

// Colors is the ordered 16-entry palette. Round-robin assignment walks it
// in this order, so it must never be reordered.
var Colors = []Color{
	{Name: "yellow-orange", Classes: Classes{BG: "bg-amber-100", Border: "border-amber-500", Text: "text-amber-900", Hover: "hover:bg-amber-200"}, Hex: Hex{BG: "#fef3c7", Border: "#f59e0b", Text: "#78350f"}},
	{Name: "yellow", Classes: Classes{BG: "bg-yellow-100", Border: "border-yellow-500", Text: "text-yellow-900", Hover: "hover:bg-yellow-200"}, Hex: Hex{BG: "#fef9c3", Border: "#eab308", Text: "#713f12"}},
	{Name: "orange", Classes: Classes{BG: "bg-orange-100", Border: "border-orange-500", Text: "text-orange-900", Hover: "hover:bg-orange-200"}, Hex: Hex{BG: "#ffedd5", Border: "#f97316", Text: "#7c2d12"}},
	{Name: "red", Classes: Classes{BG: "bg-red-100", Border: "border-red-500", Text: "text-red-900", Hover: "hover:bg-red-200"}, Hex: Hex{BG: "#fee2e2", Border: "#ef4444", Text: "#7f1d1d"}},
	{Name: "blue", Classes: Classes{BG: "bg-blue-100", Border: "border-blue-500", Text: "text-blue-900", Hover: "hover:bg-blue-200"}, Hex: Hex{BG: "#dbeafe", Border: "#3b82f6", Text: "#1e3a8a"}},
	{Name: "purple", Classes: Classes{BG: "bg-purple-100", Border: "border-purple-500", Text: "text-purple-900", Hover: "hover:bg-purple-200"}, Hex: Hex{BG: "#f3e8ff", Border: "#a855f7", Text: "#581c87"}},
	{Name: "teal", Classes: Classes{BG: "bg-teal-100", Border: "border-teal-500", Text: "text-teal-900", Hover: "hover:bg-teal-200"}, Hex: Hex{BG: "#ccfbf1", Border: "#14b8a6", Text: "#134e4a"}},
	{Name: "light-purple", Classes: Classes{BG: "bg-violet-100", Border: "border-violet-500", Text: "text-violet-900", Hover: "hover:bg-violet-200"}, Hex: Hex{BG: "#ede9fe", Border: "#8b5cf6", Text: "#4c1d95"}},
	{Name: "light-blue", Classes: Classes{BG: "bg-sky-100", Border: "border-sky-500", Text: "text-sky-900", Hover: "hover:bg-sky-200"}, Hex: Hex{BG: "#e0f2fe", Border: "#0ea5e9", Text: "#0c4a6e"}},
	{Name: "green", Classes: Classes{BG: "bg-emerald-100", Border: "border-emerald-500", Text: "text-emerald-900", Hover: "hover:bg-emerald-200"}, Hex: Hex{BG: "#d1fae5", Border: "#10b981", Text: "#064e3b"}},
	{Name: "black", Classes: Classes{BG: "bg-gray-800", Border: "border-gray-900", Text: "text-white", Hover: "hover:bg-gray-700"}, Hex: Hex{BG: "#1f2937", Border: "#111827", Text: "#ffffff"}},
	{Name: "muted-gray", Classes: Classes{BG: "bg-slate-200", Border: "border-slate-500", Text: "text-slate-900", Hover: "hover:bg-slate-300"}, Hex: Hex{BG: "#e2e8f0", Border: "#64748b", Text: "#0f172a"}},
	{Name: "brown", Classes: Classes{BG: "bg-amber-200", Border: "border-amber-700", Text: "text-amber-900", Hover: "hover:bg-amber-300"}, Hex: Hex{BG: "#fde68a", Border: "#b45309", Text: "#78350f"}},
	{Name: "light-pink", Classes: Classes{BG: "bg-pink-100", Border: "border-pink-400", Text: "text-pink-900", Hover: "hover:bg-pink-200"}, Hex: Hex{BG: "#fce7f3", Border: "#f472b6", Text: "#831843"}},
	{Name: "kiwi", Classes: Classes{BG: "bg-lime-100", Border: "border-lime-500", Text: "text-lime-900", Hover: "hover:bg-lime-200"}, Hex: Hex{BG: "#ecfccb", Border: "#84cc16", Text: "#365314"}},
	{Name: "rose", Classes: Classes{BG: "bg-rose-100", Border: "border-rose-500", Text: "text-rose-900", Hover: "hover:bg-rose-200"}, Hex: Hex{BG: "#ffe4e6", Border: "#f43f5e", Text: "#881337"}},
}

// DefaultHex is drawn for types with no resolvable color.
var DefaultHex = Hex{BG: "#e5e7eb", Border: "#9ca3af", Text: "#1f2937"}

var (
	byName    = make(map[string]Color, len(Colors))
	hexByBGCl = make(map[string]Hex, len(Colors))
)

func init() {
	for _, c := range Colors {
		byName[c.Name] = c
		hexByBGCl[c.Classes.BG] = c.Hex
	}
}

// ByName returns the palette entry called name.
func ByName(name string) (Color, bool) {
	c, ok := byName[name]
	return c, ok
}

// Valid reports whether name is a palette entry.
func Valid(name string) bool {
	_, ok := byName[name]
	return ok
}

// Names returns the palette names in palette order.
func Names() []string {
	names := make([]string, len(Colors))
	for i, c := range Colors {
		names[i] = c.Name
	}
	return names
}

// Scheme maps an event type to its classes.
type Scheme map[string]Classes

// Generate assigns classes to every type. Types are visited alphabetically;
// a valid mapping wins, otherwise the next palette entry is used. Only
// unmapped types advance the round-robin position.
func Generate(types []string, mappings map[string]string) Scheme {
	sorted := append([]string(nil), types...)
	sort.Strings(sorted)

	scheme := make(Scheme, len(sorted))
	next := 0
	for _, t := range sorted {
		if name, ok := mappings[t]; ok {
			if c, ok := byName[name]; ok {
				scheme[t] = c.Classes
				continue
			}
		}
		scheme[t] = Colors[next%len(Colors)].Classes
		next++
	}
	return scheme
}

// DefaultMappings assigns palette names round-robin over the sorted types.
// It is used to migrate schedules that predate color mappings.
func DefaultMappings(types []string) map[string]string {
	sorted := append([]string(nil), types...)
	sort.Strings(sorted)

	out := make(map[string]string, len(sorted))
	for i, t := range sorted {
		out[t] = Colors[i%len(Colors)].Name
	}
	return out
}

// Merge copies src into dst for keys dst does not have yet and returns dst.
func (s Scheme) Merge(src Scheme) Scheme {
	for k, v := range src {
		if _, ok := s[k]; !ok {
			s[k] = v
		}
	}
	return s
}

// HexFor resolves the drawing colors for an event type through the
// scheme's background class, falling back to DefaultHex.
func (s Scheme) HexFor(eventType string) Hex {
	classes, ok := s[eventType]
	if !ok {
		return DefaultHex
	}
	if h, ok := hexByBGCl[classes.BG]; ok {
		return h
	}
	return DefaultHex
}

// ScheduleColor is the accent used to tell schedules apart in calendar views.
type ScheduleColor struct {
	BG     string `json:"bg"`
	Text   string `json:"text"`
	Border string `json:"border"`
}

// ScheduleColors is the accent palette for schedules.
var ScheduleColors = []ScheduleColor{
	{BG: "#818cf8", Text: "#1e1b4b", Border: "#6366f1"}, // indigo
	{BG: "#34d399", Text: "#064e3b", Border: "#10b981"}, // emerald
	{BG: "#fb923c", Text: "#431407", Border: "#f97316"}, // orange
	{BG: "#f472b6", Text: "#500724", Border: "#ec4899"}, // pink
	{BG: "#60a5fa", Text: "#1e3a5f", Border: "#3b82f6"}, // blue
	{BG: "#a78bfa", Text: "#2e1065", Border: "#8b5cf6"}, // violet
	{BG: "#fbbf24", Text: "#451a03", Border: "#f59e0b"}, // amber
	{BG: "#2dd4bf", Text: "#134e4a", Border: "#14b8a6"}, // teal
}

// ScheduleColorFor picks a stable accent for a schedule filename.
// It returns nil for an empty filename.
func ScheduleColorFor(filename string) *ScheduleColor {
	if filename == "" {
		return nil
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(filename))
	c := ScheduleColors[h.Sum32()%uint32(len(ScheduleColors))]
	return &c
}
