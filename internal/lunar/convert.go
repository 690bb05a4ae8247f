package lunar

import (
	"fmt"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// Date is a date in the lunisolar calendar.
//
// Year is the table year the date falls in, which differs from the Gregorian year for dates
// before the lunar new year.
type Date struct {
	Year   int
	Month  int // 1-12
	Day    int // 1-30
	IsLeap bool
}

// MonthName returns the month label, e.g. "正月" or "闰二月".
func (d Date) MonthName() string {
	return MonthName(d.Month, d.IsLeap)
}

// DayName returns the day label, e.g. "初一".
func (d Date) DayName() string {
	return DayName(d.Day)
}

// String returns the month and day labels joined, e.g. "闰二月初一".
func (d Date) String() string {
	return d.MonthName() + d.DayName()
}

// StemBranch returns the stem-branch pair of the lunar year.
func (d Date) StemBranch() StemBranch {
	return StemBranchOf(d.Year)
}

// YearName returns the stem-branch year label, e.g. "甲子年".
func (d Date) YearName() string {
	return d.StemBranch().String() + yearSuffix
}

// Zodiac returns the zodiac animal of the lunar year.
func (d Date) Zodiac() string {
	return ZodiacOf(d.Year)
}

// ZodiacName returns the zodiac year label, e.g. "鼠年".
func (d Date) ZodiacName() string {
	return d.Zodiac() + yearSuffix
}

// Converter maps Gregorian dates onto a lunar table. It holds no mutable state.
type Converter struct {
	epoch     time.Time
	startYear int
	records   []Record
	totalDays int
}

var defaultConverter = &Converter{
	epoch:     Epoch,
	startYear: MinYear,
	records:   Table[:],
	totalDays: tableDays,
}

// NewConverter returns a converter backed by the built-in table.
func NewConverter() *Converter {
	return defaultConverter
}

// NewConverterWithTable returns a converter over records, where records[0] is lunar year
// startYear and begins on the Gregorian date epoch.
func NewConverterWithTable(epoch time.Time, startYear int, records []Record) *Converter {
	rs := make([]Record, len(records))
	copy(rs, records)
	return &Converter{
		epoch:     time.Date(epoch.Year(), epoch.Month(), epoch.Day(), 0, 0, 0, 0, time.UTC),
		startYear: startYear,
		records:   rs,
		totalDays: sumYearDays(rs),
	}
}

// Convert converts a Gregorian date using the built-in table.
func Convert(year, month, day int) (Date, error) {
	return defaultConverter.Convert(year, month, day)
}

// ToSolar converts a lunar date back to its Gregorian date using the built-in table.
func ToSolar(year, month, day int, leap bool) (time.Time, error) {
	return defaultConverter.ToSolar(year, month, day, leap)
}

// DaysSinceEpoch returns the number of days between Epoch and the given Gregorian date.
// The result is negative for dates before Epoch.
func DaysSinceEpoch(year, month, day int) (int, error) {
	if !ValidGregorian(year, month, day) {
		return 0, dateError("offset", year, month, day, ErrInvalidDate)
	}
	return daysBetween(Epoch, year, month, day), nil
}

// Convert converts a Gregorian date to its lunar date.
//
// The year is found by a linear scan from the first record, subtracting each year's length
// from the day offset; the month by walking that year's month sequence the same way.
func (c *Converter) Convert(year, month, day int) (Date, error) {
	const op = "convert"

	if !ValidGregorian(year, month, day) {
		return Date{}, dateError(op, year, month, day, ErrInvalidDate)
	}

	// A lunar year never spills more than two months into the next Gregorian year, so
	// anything further out is rejected before doing date arithmetic on it.
	if year < c.startYear || year > c.startYear+len(c.records) {
		return Date{}, dateError(op, year, month, day, ErrOutOfRange)
	}

	offset := daysBetween(c.epoch, year, month, day)
	if offset < 0 || offset >= c.totalDays {
		return Date{}, dateError(op, year, month, day, ErrOutOfRange)
	}

	idx := 0
	for ; idx < len(c.records); idx++ {
		yearDays := c.records[idx].YearTotalDays()
		if offset < yearDays {
			break
		}
		offset -= yearDays
	}
	if idx == len(c.records) {
		return Date{}, dateError(op, year, month, day, fmt.Errorf("%w: offset past end of table", ErrConversion))
	}

	rec := c.records[idx]
	lunarYear := c.startYear + idx
	if err := rec.Validate(); err != nil {
		return Date{}, dateError(op, year, month, day, err)
	}

	for _, ml := range rec.MonthLengths() {
		if offset < ml.Days {
			lunarDay := offset + 1
			if lunarDay > len(dayNames) || lunarDay > ml.Days {
				return Date{}, dateError(op, year, month, day,
					fmt.Errorf("%w: day %d exceeds month length %d", ErrConversion, lunarDay, ml.Days))
			}
			return Date{
				Year:   lunarYear,
				Month:  ml.Month,
				Day:    lunarDay,
				IsLeap: ml.Leap,
			}, nil
		}
		offset -= ml.Days
	}

	return Date{}, dateError(op, year, month, day,
		fmt.Errorf("%w: offset past end of lunar year %d", ErrConversion, lunarYear))
}

// ToSolar converts a lunar date to its Gregorian date by reversing the walk in Convert.
func (c *Converter) ToSolar(year, month, day int, leap bool) (time.Time, error) {
	const op = "to solar"

	idx := year - c.startYear
	if idx < 0 || idx >= len(c.records) {
		return time.Time{}, dateError(op, year, month, day, ErrOutOfRange)
	}

	rec := c.records[idx]
	if err := rec.Validate(); err != nil {
		return time.Time{}, dateError(op, year, month, day, err)
	}

	offset := 0
	for i := 0; i < idx; i++ {
		offset += c.records[i].YearTotalDays()
	}

	for _, ml := range rec.MonthLengths() {
		if ml.Month == month && ml.Leap == leap {
			if day < 1 || day > ml.Days {
				return time.Time{}, dateError(op, year, month, day,
					fmt.Errorf("%w: %s has %d days", ErrInvalidDate, MonthName(month, leap), ml.Days))
			}
			return c.epoch.AddDate(0, 0, offset+day-1), nil
		}
		offset += ml.Days
	}

	if leap {
		return time.Time{}, dateError(op, year, month, day,
			fmt.Errorf("%w: lunar year %d has no leap month %d", ErrInvalidDate, year, month))
	}
	return time.Time{}, dateError(op, year, month, day, ErrInvalidDate)
}

// ValidGregorian reports whether year-month-day exists in the Gregorian calendar.
func ValidGregorian(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	return day <= daysInMonth(year, month)
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func daysBetween(epoch time.Time, year, month, day int) int {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return int((t.Unix() - epoch.Unix()) / secondsPerDay)
}
