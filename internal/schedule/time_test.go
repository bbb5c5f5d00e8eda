package schedule

import (
	"errors"
	"testing"
)

func TestValidTime(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"00:00", true},
		{"09:30", true},
		{"23:59", true},
		{"24:00", false},
		{"9:30", false},
		{"09:60", false},
		{"09-30", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidTime(tt.input); got != tt.want {
			t.Errorf("ValidTime(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseTime(t *testing.T) {
	got, err := ParseTime("13:45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 825 {
		t.Errorf("ParseTime(%q) = %d, want %d", "13:45", got, 825)
	}

	if _, err := ParseTime("25:00"); !errors.Is(err, ErrInvalidTimeFormat) {
		t.Errorf("ParseTime(25:00) error = %v, want %v", err, ErrInvalidTimeFormat)
	}
}

func TestTimeToMinutesRoundTrip(t *testing.T) {
	for _, s := range []string{"00:00", "00:01", "09:15", "12:00", "23:59"} {
		m := TimeToMinutes(s)
		if got := FormatTime(m); got != s {
			t.Errorf("FormatTime(TimeToMinutes(%q)) = %q", s, got)
		}
	}
	if got := FormatTime(MinutesPerDay); got != "24:00" {
		t.Errorf("FormatTime(1440) = %q, want 24:00", got)
	}
	if got := TimeToMinutes("9:0"); got != 0 {
		t.Errorf("TimeToMinutes(short) = %d, want 0", got)
	}
}

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 int
		want           bool
	}{
		{"disjoint", 540, 600, 660, 720, false},
		{"touching", 540, 600, 600, 660, false},
		{"partial", 540, 630, 600, 660, true},
		{"contained", 540, 720, 600, 630, true},
		{"identical", 540, 600, 540, 600, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RangesOverlap(tt.s1, tt.e1, tt.s2, tt.e2); got != tt.want {
				t.Errorf("RangesOverlap = %v, want %v", got, tt.want)
			}
			if got := RangesOverlap(tt.s2, tt.e2, tt.s1, tt.e1); got != tt.want {
				t.Errorf("RangesOverlap (swapped) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRangeContains(t *testing.T) {
	if !RangeContains(540, 720, 540, 720) {
		t.Error("expected a range to contain itself")
	}
	if RangeContains(540, 720, 530, 600) {
		t.Error("expected range starting earlier not to be contained")
	}
}

func TestNormalizeDay(t *testing.T) {
	tests := []struct {
		input   int
		want    int
		wantErr bool
	}{
		{0, 0, false},
		{6, 6, false},
		{7, 6, false},
		{-1, 0, true},
		{8, 0, true},
	}

	for _, tt := range tests {
		got, err := NormalizeDay(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidDay) {
				t.Errorf("NormalizeDay(%d) error = %v, want %v", tt.input, err, ErrInvalidDay)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeDay(%d) unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("NormalizeDay(%d) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
