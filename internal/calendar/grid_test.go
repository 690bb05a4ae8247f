package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/zapponejosh/lunar-calendar-api/internal/lunar"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// failingConverter wraps the real converter and fails on one date.
type failingConverter struct {
	failOn time.Time
	err    error
	calls  int
}

func (f *failingConverter) Convert(y, m, d int) (lunar.Date, error) {
	f.calls++
	if date(y, m, d).Equal(f.failOn) {
		return lunar.Date{}, f.err
	}
	return lunar.Convert(y, m, d)
}

func TestBuildMonthGrid_February2024(t *testing.T) {
	grid, err := BuildMonthGrid(2024, 2, date(2024, 2, 15))
	if err != nil {
		t.Fatalf("BuildMonthGrid() error = %v", err)
	}

	if grid.Year != 2024 || grid.Month != 2 {
		t.Errorf("grid = %d-%d, want 2024-2", grid.Year, grid.Month)
	}
	if len(grid.Days) != 35 {
		t.Fatalf("len(Days) = %d, want 35", len(grid.Days))
	}

	// Feb 1 2024 is a Thursday, so Jan 28-31 lead the grid.
	wantLeading := []Cell{
		{Day: 28, LunarDay: "十八", LunarMonth: "腊月"},
		{Day: 29, LunarDay: "十九", LunarMonth: "腊月"},
		{Day: 30, LunarDay: "二十", LunarMonth: "腊月"},
		{Day: 31, LunarDay: "廿一", LunarMonth: "腊月"},
	}
	if diff := cmp.Diff(wantLeading, grid.Days[:4]); diff != "" {
		t.Errorf("leading cells mismatch (-want +got):\n%s", diff)
	}

	first := grid.Days[4]
	wantFirst := Cell{Day: 1, Weekday: "四", WeekdayNum: 4, LunarDay: "廿二", LunarMonth: "腊月"}
	if diff := cmp.Diff(wantFirst, first); diff != "" {
		t.Errorf("Feb 1 cell mismatch (-want +got):\n%s", diff)
	}

	newYear := grid.Days[4+9]
	if newYear.Day != 10 || newYear.LunarMonth != "正月" || newYear.LunarDay != "初一" {
		t.Errorf("Feb 10 cell = %+v, want 正月初一", newYear)
	}
	if newYear.Weekday != "六" || !newYear.IsWeekend {
		t.Errorf("Feb 10 cell weekday = %q weekend=%v, want 六 weekend", newYear.Weekday, newYear.IsWeekend)
	}

	wantTrailing := []Cell{
		{Day: 1, LunarDay: "廿一", LunarMonth: "正月"},
		{Day: 2, LunarDay: "廿二", LunarMonth: "正月"},
	}
	if diff := cmp.Diff(wantTrailing, grid.Days[33:]); diff != "" {
		t.Errorf("trailing cells mismatch (-want +got):\n%s", diff)
	}

	if grid.LunarYear != "丁卯年" {
		t.Errorf("LunarYear = %q, want 丁卯年", grid.LunarYear)
	}
	if grid.Zodiac != "兔年" {
		t.Errorf("Zodiac = %q, want 兔年", grid.Zodiac)
	}
}

func TestBuildMonthGrid_Today(t *testing.T) {
	grid, err := BuildMonthGrid(2024, 2, date(2024, 2, 15))
	if err != nil {
		t.Fatalf("BuildMonthGrid() error = %v", err)
	}

	var today []Cell
	for _, c := range grid.Days {
		if c.IsToday {
			today = append(today, c)
		}
	}
	if len(today) != 1 {
		t.Fatalf("%d cells marked today, want 1", len(today))
	}
	want := Cell{Day: 15, Weekday: "四", WeekdayNum: 4, LunarDay: "初六", LunarMonth: "正月", IsToday: true}
	if diff := cmp.Diff(want, today[0]); diff != "" {
		t.Errorf("today cell mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildMonthGrid_TodayInPadding(t *testing.T) {
	// Jan 31 shows as padding in the February grid but is never marked.
	grid, err := BuildMonthGrid(2024, 2, date(2024, 1, 31))
	if err != nil {
		t.Fatalf("BuildMonthGrid() error = %v", err)
	}
	for i, c := range grid.Days {
		if c.IsToday {
			t.Errorf("cell %d (%d) marked today", i, c.Day)
		}
	}
}

func TestBuildMonthGrid_Sizes(t *testing.T) {
	tests := []struct {
		year, month int
		want        int
		leading     int
	}{
		{2024, 1, 35, 1},
		{2024, 2, 35, 4},
		{2023, 12, 42, 5},
		{2015, 2, 35, 0},
		{2026, 2, 35, 0},
	}

	for _, tt := range tests {
		grid, err := BuildMonthGrid(tt.year, tt.month, time.Time{})
		if err != nil {
			t.Fatalf("BuildMonthGrid(%d, %d) error = %v", tt.year, tt.month, err)
		}
		if len(grid.Days) != tt.want {
			t.Errorf("BuildMonthGrid(%d, %d) has %d cells, want %d", tt.year, tt.month, len(grid.Days), tt.want)
		}
		if grid.Days[tt.leading].Day != 1 || grid.Days[tt.leading].Weekday == "" {
			t.Errorf("BuildMonthGrid(%d, %d) cell %d = %+v, want day 1", tt.year, tt.month, tt.leading, grid.Days[tt.leading])
		}
	}
}

func TestBuildMonthGrid_AllMonthsInRange(t *testing.T) {
	for year := 1901; year <= 2100; year++ {
		for month := 1; month <= 12; month++ {
			grid, err := BuildMonthGrid(year, month, time.Time{})
			if err != nil {
				t.Fatalf("BuildMonthGrid(%d, %d) error = %v", year, month, err)
			}
			if n := len(grid.Days); n != 35 && n != 42 {
				t.Fatalf("BuildMonthGrid(%d, %d) has %d cells", year, month, n)
			}

			inMonth := 0
			for _, c := range grid.Days {
				if c.LunarDay == "" || c.LunarMonth == "" {
					t.Fatalf("BuildMonthGrid(%d, %d) cell %+v missing lunar labels", year, month, c)
				}
				if c.Weekday != "" {
					inMonth++
				} else if c.WeekdayNum != 0 || c.IsWeekend || c.IsToday {
					t.Fatalf("BuildMonthGrid(%d, %d) padding cell %+v has weekday data", year, month, c)
				}
			}
			if inMonth != DaysIn(year, month) {
				t.Fatalf("BuildMonthGrid(%d, %d) has %d month cells, want %d", year, month, inMonth, DaysIn(year, month))
			}
		}
	}
}

func TestBuildMonthGrid_InvalidMonth(t *testing.T) {
	for _, month := range []int{0, 13, -1} {
		_, err := BuildMonthGrid(2024, month, time.Time{})
		if !errors.Is(err, lunar.ErrInvalidDate) {
			t.Errorf("BuildMonthGrid(2024, %d) error = %v, want ErrInvalidDate", month, err)
		}
	}
}

func TestBuildMonthGrid_OutOfRange(t *testing.T) {
	tests := []struct {
		name        string
		year, month int
	}{
		{"before epoch", 1899, 12},
		{"january 1900 starts before epoch", 1900, 1},
		{"past end of table", 2101, 2},
		{"january 2101 runs past end of table", 2101, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := BuildMonthGrid(tt.year, tt.month, time.Time{})
			if !errors.Is(err, lunar.ErrOutOfRange) {
				t.Fatalf("error = %v, want ErrOutOfRange", err)
			}
			if grid != nil {
				t.Errorf("grid = %+v, want nil", grid)
			}
		})
	}
}

func TestGridBuilder_AbortsOnFirstError(t *testing.T) {
	boom := errors.New("boom")
	conv := &failingConverter{failOn: date(2024, 2, 10), err: boom}

	grid, err := NewGridBuilder(conv).Build(2024, 2, time.Time{})
	if !errors.Is(err, boom) {
		t.Fatalf("Build() error = %v, want boom", err)
	}
	if grid != nil {
		t.Errorf("Build() grid = %+v, want nil", grid)
	}
	// 4 leading cells plus Feb 1-10.
	if conv.calls != 14 {
		t.Errorf("converter called %d times, want 14", conv.calls)
	}
}

func TestGridBuilder_PaddingError(t *testing.T) {
	conv := &failingConverter{failOn: date(2024, 3, 2), err: lunar.ErrConversion}

	_, err := NewGridBuilder(conv).Build(2024, 2, time.Time{})
	if !errors.Is(err, lunar.ErrConversion) {
		t.Fatalf("Build() error = %v, want ErrConversion", err)
	}
}
