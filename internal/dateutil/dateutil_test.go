package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		got, err := ParseDate("2025-01-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("empty defaults to today", func(t *testing.T) {
		got, err := ParseDate("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		today := TruncateToDay(time.Now())
		if !got.Equal(today) {
			t.Errorf("got %v, want %v", got, today)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := ParseDate("01-15-2025")
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})
}

func TestNewDateRange(t *testing.T) {
	t.Run("valid date range", func(t *testing.T) {
		dr, err := NewDateRange("2025-01-15", "2025-01-20")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expectedStart := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
		expectedEnd := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
		if !dr.Start.Equal(expectedStart) {
			t.Errorf("got start %v, want %v", dr.Start, expectedStart)
		}
		if !dr.End.Equal(expectedEnd) {
			t.Errorf("got end %v, want %v", dr.End, expectedEnd)
		}
	})

	t.Run("same start and end date", func(t *testing.T) {
		dr, err := NewDateRange("2025-01-15", "2025-01-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !dr.Start.Equal(dr.End) {
			t.Errorf("expected start and end to be equal, got %v and %v", dr.Start, dr.End)
		}
	})

	t.Run("empty start defaults to today", func(t *testing.T) {
		dr, err := NewDateRange("", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		today := TruncateToDay(time.Now())
		if !dr.Start.Equal(today) {
			t.Errorf("got start %v, want %v", dr.Start, today)
		}
		if !dr.End.Equal(today) {
			t.Errorf("got end %v, want %v", dr.End, today)
		}
	})

	t.Run("empty end defaults to start", func(t *testing.T) {
		dr, err := NewDateRange("2025-01-15", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expectedDate := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
		if !dr.Start.Equal(expectedDate) {
			t.Errorf("got start %v, want %v", dr.Start, expectedDate)
		}
		if !dr.End.Equal(expectedDate) {
			t.Errorf("got end %v, want %v", dr.End, expectedDate)
		}
	})
}

func TestNewDateRange_Errors(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		endDate   string
		wantErr   error
	}{
		{
			name:      "invalid start date format",
			startDate: "01-15-2025",
			endDate:   "",
			wantErr:   ErrInvalidDateFormat,
		},
		{
			name:      "invalid end date format",
			startDate: "2025-01-15",
			endDate:   "01-20-2025",
			wantErr:   ErrInvalidDateFormat,
		},
		{
			name:      "end date before start date",
			startDate: "2025-01-20",
			endDate:   "2025-01-15",
			wantErr:   ErrEndDateBeforeStart,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDateRange(tt.startDate, tt.endDate)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWeekRange(t *testing.T) {
	tests := []struct {
		name       string
		input      time.Time
		wantMonday time.Time
		wantSunday time.Time
	}{
		{
			name:       "Monday input returns same Monday",
			input:      time.Date(2025, 1, 6, 10, 30, 0, 0, time.UTC), // Monday
			wantMonday: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "Wednesday returns previous Monday",
			input:      time.Date(2025, 1, 8, 14, 0, 0, 0, time.UTC), // Wednesday
			wantMonday: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "Sunday returns previous Monday and same Sunday",
			input:      time.Date(2025, 1, 12, 23, 59, 0, 0, time.UTC), // Sunday
			wantMonday: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "Friday returns previous Monday",
			input:      time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC), // Friday
			wantMonday: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "Saturday returns previous Monday",
			input:      time.Date(2025, 1, 11, 12, 0, 0, 0, time.UTC), // Saturday
			wantMonday: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMonday, gotSunday := WeekRange(tt.input)
			if !gotMonday.Equal(tt.wantMonday) {
				t.Errorf("monday: got %v, want %v", gotMonday, tt.wantMonday)
			}
			if !gotSunday.Equal(tt.wantSunday) {
				t.Errorf("sunday: got %v, want %v", gotSunday, tt.wantSunday)
			}
		})
	}
}

func TestTruncateToDay(t *testing.T) {
	input := time.Date(2025, 1, 15, 14, 30, 45, 123456789, time.UTC)
	got := TruncateToDay(input)
	want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDayOfWeek(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2025-01-06", 0}, // Monday
		{"2025-01-08", 2},
		{"2025-01-11", 5},
		{"2025-01-12", 6}, // Sunday
	}

	for _, tt := range tests {
		d, err := ParseDate(tt.date)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", tt.date, err)
		}
		if got := DayOfWeek(d); got != tt.want {
			t.Errorf("DayOfWeek(%s) = %d, want %d", tt.date, got, tt.want)
		}
	}
}

func TestDayNames(t *testing.T) {
	if got := DayName(0); got != "Monday" {
		t.Errorf("DayName(0) = %q, want Monday", got)
	}
	if got := DayShortName(6); got != "Sun" {
		t.Errorf("DayShortName(6) = %q, want Sun", got)
	}
	if got := DayName(7); got != "" {
		t.Errorf("DayName(7) = %q, want empty", got)
	}
}

func TestMonthAndYearRange(t *testing.T) {
	leap := time.Date(2024, 2, 14, 9, 0, 0, 0, time.UTC)

	first, last := MonthRange(leap)
	if FormatDate(first) != "2024-02-01" || FormatDate(last) != "2024-02-29" {
		t.Errorf("MonthRange = %s..%s, want 2024-02-01..2024-02-29", FormatDate(first), FormatDate(last))
	}

	first, last = YearRange(leap)
	if FormatDate(first) != "2024-01-01" || FormatDate(last) != "2024-12-31" {
		t.Errorf("YearRange = %s..%s, want 2024-01-01..2024-12-31", FormatDate(first), FormatDate(last))
	}
}

func TestDateRangeDates(t *testing.T) {
	dr, err := NewDateRange("2024-12-30", "2025-01-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := dr.Dates()
	want := []string{"2024-12-30", "2024-12-31", "2025-01-01", "2025-01-02"}
	if len(got) != len(want) {
		t.Fatalf("got %d dates, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("dates[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDateStringInRange(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{"2025-01-10", true},
		{"2025-01-15", true},
		{"2025-01-20", true},
		{"2025-01-09", false},
		{"2025-01-21", false},
	}
	for _, tt := range tests {
		if got := DateStringInRange(tt.date, "2025-01-10", "2025-01-20"); got != tt.want {
			t.Errorf("DateStringInRange(%s) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestFormatForDisplay(t *testing.T) {
	d := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	if got := FormatForDisplay(d, true); got != "January 5, 2026" {
		t.Errorf("FormatForDisplay(year) = %q", got)
	}
	if got := FormatForDisplay(d, false); got != "January 5" {
		t.Errorf("FormatForDisplay(no year) = %q", got)
	}
}

func TestParseDateArg(t *testing.T) {
	// Reference date: Friday, January 10, 2025
	friday := time.Date(2025, 1, 10, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty is today", input: "", want: "2025-01-10"},
		{name: "today", input: "Today", want: "2025-01-10"},
		{name: "yesterday", input: "yesterday", want: "2025-01-09"},
		{name: "tomorrow", input: "tomorrow", want: "2025-01-11"},
		{name: "last week", input: "last-week", want: "2025-01-03"},
		{name: "next week", input: "next-week", want: "2025-01-17"},
		{name: "weekday in current week before today", input: "monday", want: "2025-01-06"},
		{name: "weekday in current week after today", input: "SUNDAY", want: "2025-01-12"},
		{name: "next weekday", input: "next-wednesday", want: "2025-01-15"},
		{name: "past absolute date", input: "2024-06-01", want: "2024-06-01"},
		{name: "surrounding whitespace", input: "  2025-02-01 ", want: "2025-02-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateArg(tt.input, friday)
			if err != nil {
				t.Fatalf("ParseDateArg(%q) error: %v", tt.input, err)
			}
			if FormatDate(got) != tt.want {
				t.Errorf("ParseDateArg(%q) = %s, want %s", tt.input, FormatDate(got), tt.want)
			}
		})
	}
}

func TestParseDateArg_Errors(t *testing.T) {
	friday := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	for _, input := range []string{"next-month", "someday", "01/15/2025", "next-"} {
		if _, err := ParseDateArg(input, friday); !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("ParseDateArg(%q) error = %v, want %v", input, err, ErrInvalidDateFormat)
		}
	}
}
