package calendar

import (
	"testing"
	"time"
)

func TestWeekdayName(t *testing.T) {
	tests := []struct {
		day  time.Weekday
		want string
	}{
		{time.Sunday, "日"},
		{time.Monday, "一"},
		{time.Wednesday, "三"},
		{time.Saturday, "六"},
		{time.Weekday(7), ""},
	}
	for _, tt := range tests {
		if got := WeekdayName(tt.day); got != tt.want {
			t.Errorf("WeekdayName(%d) = %q, want %q", tt.day, got, tt.want)
		}
	}
}

func TestParseDateString(t *testing.T) {
	tests := []struct {
		input   string
		y, m, d int
		wantErr bool
	}{
		{"2024-02-10", 2024, 2, 10, false},
		{"2024-2-9", 2024, 2, 9, false},
		{"2024-02-29", 2024, 2, 29, false},
		{"2023-02-29", 0, 0, 0, true},
		{"2024-13-01", 0, 0, 0, true},
		{"2024-00-10", 0, 0, 0, true},
		{"24-02-10", 0, 0, 0, true},
		{"2024/02/10", 0, 0, 0, true},
		{"", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			y, m, d, err := ParseDateString(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDateString(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if y != tt.y || m != tt.m || d != tt.d {
				t.Errorf("ParseDateString(%q) = %d-%d-%d, want %d-%d-%d", tt.input, y, m, d, tt.y, tt.m, tt.d)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(2024, 2, 5); got != "2024-02-05" {
		t.Errorf("FormatDate() = %q, want 2024-02-05", got)
	}
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year, month, want int
	}{
		{2024, 2, 29},
		{2023, 2, 28},
		{1900, 2, 28},
		{2000, 2, 29},
		{2024, 4, 30},
		{2024, 12, 31},
	}
	for _, tt := range tests {
		if got := DaysIn(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysIn(%d, %d) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestToday(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	now := time.Date(2024, 2, 10, 3, 30, 0, 0, loc) // 2024-02-09 19:30 UTC

	got := Today(now)
	want := time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Today() = %v, want %v", got, want)
	}
}
