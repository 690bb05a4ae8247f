package calendar

import (
	"fmt"
	"time"

	"github.com/zapponejosh/lunar-calendar-api/internal/lunar"
)

// Grid sizes: five or six rows of seven days.
const (
	shortGridCells = 35
	longGridCells  = 42
)

// Cell is one day in a month grid.
//
// Cells padding the grid from the previous or next month carry only the day number and the
// lunar labels; their weekday fields stay empty so clients can render them dimmed.
type Cell struct {
	Day        int    `json:"day"`
	Weekday    string `json:"weekday"`
	WeekdayNum int    `json:"weekday_num"`
	LunarDay   string `json:"lunar_day"`
	LunarMonth string `json:"lunar_month"`
	IsToday    bool   `json:"is_today"`
	IsWeekend  bool   `json:"is_weekend"`
}

// MonthGrid is a Gregorian month laid out in whole weeks, Sunday first.
type MonthGrid struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Days      []Cell `json:"days"`
	LunarYear string `json:"lunar_year"`
	Zodiac    string `json:"zodiac"`
}

// LunarConverter converts a Gregorian date to a lunar date.
// *lunar.Converter satisfies it.
type LunarConverter interface {
	Convert(year, month, day int) (lunar.Date, error)
}

// GridBuilder builds month grids using a LunarConverter.
type GridBuilder struct {
	conv LunarConverter
}

// NewGridBuilder creates a grid builder. A nil converter means the built-in lunar table.
func NewGridBuilder(conv LunarConverter) *GridBuilder {
	if conv == nil {
		conv = lunar.NewConverter()
	}
	return &GridBuilder{conv: conv}
}

// BuildMonthGrid builds the grid for year/month with the built-in lunar table.
func BuildMonthGrid(year, month int, today time.Time) (*MonthGrid, error) {
	return NewGridBuilder(nil).Build(year, month, today)
}

// Build lays out year/month as 35 or 42 cells, Sunday first, and annotates every cell with its
// lunar labels. today is compared by calendar date only.
//
// The first conversion failure aborts the build; no partial grid is returned.
func (b *GridBuilder) Build(year, month int, today time.Time) (*MonthGrid, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("build grid %04d-%02d: %w: month must be 1-12", year, month, lunar.ErrInvalidDate)
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)
	firstWeekday := int(first.Weekday())
	daysInMonth := daysBetween(first, next)

	todayY, todayM, todayD := today.Date()

	cells := make([]Cell, 0, longGridCells)

	// Trailing days of the previous month.
	for i := firstWeekday; i > 0; i-- {
		d := first.AddDate(0, 0, -i)
		cell, err := b.paddingCell(d)
		if err != nil {
			return nil, err
		}
		cells = append(cells, cell)
	}

	for day := 1; day <= daysInMonth; day++ {
		d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		ld, err := b.convert(d)
		if err != nil {
			return nil, err
		}

		weekday := d.Weekday()
		cells = append(cells, Cell{
			Day:        day,
			Weekday:    WeekdayName(weekday),
			WeekdayNum: int(weekday),
			LunarDay:   ld.DayName(),
			LunarMonth: ld.MonthName(),
			IsToday:    year == todayY && time.Month(month) == todayM && day == todayD,
			IsWeekend:  weekday == time.Sunday || weekday == time.Saturday,
		})
	}

	target := shortGridCells
	if len(cells) > shortGridCells {
		target = longGridCells
	}

	// Leading days of the next month.
	for i := 0; len(cells) < target; i++ {
		cell, err := b.paddingCell(next.AddDate(0, 0, i))
		if err != nil {
			return nil, err
		}
		cells = append(cells, cell)
	}

	header, err := b.convert(first)
	if err != nil {
		return nil, err
	}

	return &MonthGrid{
		Year:      year,
		Month:     month,
		Days:      cells,
		LunarYear: header.YearName(),
		Zodiac:    header.ZodiacName(),
	}, nil
}

func (b *GridBuilder) paddingCell(d time.Time) (Cell, error) {
	ld, err := b.convert(d)
	if err != nil {
		return Cell{}, err
	}
	return Cell{
		Day:        d.Day(),
		LunarDay:   ld.DayName(),
		LunarMonth: ld.MonthName(),
	}, nil
}

func (b *GridBuilder) convert(d time.Time) (lunar.Date, error) {
	ld, err := b.conv.Convert(d.Year(), int(d.Month()), d.Day())
	if err != nil {
		return lunar.Date{}, fmt.Errorf("build grid: %w", err)
	}
	return ld, nil
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
