package schedule

import (
	"fmt"
	"regexp"
)

// MinutesPerDay is the exclusive upper bound of a clock time in minutes.
const MinutesPerDay = 24 * 60

var timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// ValidTime reports whether s is a 24-hour "HH:MM" clock time.
func ValidTime(s string) bool {
	return timePattern.MatchString(s)
}

// ParseTime converts a strict "HH:MM" string to minutes since midnight.
func ParseTime(s string) (int, error) {
	if !ValidTime(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return TimeToMinutes(s), nil
}

// TimeToMinutes converts "HH:MM" to minutes since midnight without
// validating the hour range. Returns 0 for input that is too short.
func TimeToMinutes(t string) int {
	if len(t) < 5 {
		return 0
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours*60 + mins
}

// FormatTime converts minutes since midnight to "HH:MM".
// Callers keep m inside [0, 1440]; nothing is clamped here.
func FormatTime(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// RangesOverlap returns true if [s1,e1) and [s2,e2) share any time.
// Touching endpoints do not overlap.
func RangesOverlap(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// RangeContains returns true if [innerStart,innerEnd] lies within
// [outerStart,outerEnd].
func RangeContains(outerStart, outerEnd, innerStart, innerEnd int) bool {
	return outerStart <= innerStart && innerEnd <= outerEnd
}

// NormalizeDay maps a stored day value onto 0..6 (Monday=0).
// 7 is the legacy spelling of Sunday.
func NormalizeDay(d int) (int, error) {
	switch {
	case d == 7:
		return 6, nil
	case d >= 0 && d <= 6:
		return d, nil
	default:
		return 0, fmt.Errorf("%w: got %d", ErrInvalidDay, d)
	}
}
