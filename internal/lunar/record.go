package lunar

import "fmt"

const (
	shortMonthDays = 29
	longMonthDays  = 30
)

// Record is the packed description of one lunar year. See Table for the bit layout.
type Record uint32

// MonthLength is one entry of a lunar year's month sequence.
type MonthLength struct {
	Month int  // 1-12; for a leap entry, the ordinary month it follows
	Days  int  // 29 or 30
	Leap  bool // true for the inserted leap month
}

// MonthDays returns the length of ordinary month m (1-12).
func (r Record) MonthDays(m int) int {
	if r&(0x10000>>uint(m)) != 0 {
		return longMonthDays
	}
	return shortMonthDays
}

// LeapMonth returns the ordinary month the leap month follows, or 0 if the year has none.
func (r Record) LeapMonth() int {
	return int(r & 0xf)
}

// LeapMonthDays returns the leap month length, or 0 if the year has no leap month.
func (r Record) LeapMonthDays() int {
	if r.LeapMonth() == 0 {
		return 0
	}
	if r&0x10000 != 0 {
		return longMonthDays
	}
	return shortMonthDays
}

// LongMonthMask returns the long-month flags with bit i set when month i+1 has 30 days.
func (r Record) LongMonthMask() uint16 {
	var mask uint16
	for m := 1; m <= 12; m++ {
		if r.MonthDays(m) == longMonthDays {
			mask |= 1 << uint(m-1)
		}
	}
	return mask
}

// YearTotalDays returns the number of days in the lunar year, leap month included.
func (r Record) YearTotalDays() int {
	total := 0
	for m := 1; m <= 12; m++ {
		total += r.MonthDays(m)
	}
	return total + r.LeapMonthDays()
}

// MonthLengths returns the year's months in calendar order: the 12 ordinary months with the
// leap month, if any, placed directly after the month it follows.
func (r Record) MonthLengths() []MonthLength {
	leap := r.LeapMonth()

	months := make([]MonthLength, 0, 13)
	for m := 1; m <= 12; m++ {
		months = append(months, MonthLength{Month: m, Days: r.MonthDays(m)})
		if m == leap {
			months = append(months, MonthLength{Month: m, Days: r.LeapMonthDays(), Leap: true})
		}
	}
	return months
}

// Validate reports records whose fields fall outside their allowed ranges.
func (r Record) Validate() error {
	if r>>17 != 0 {
		return fmt.Errorf("%w: record %#x has bits above 16 set", ErrConversion, uint32(r))
	}
	if leap := r.LeapMonth(); leap > 12 {
		return fmt.Errorf("%w: record %#x has leap month %d", ErrConversion, uint32(r), leap)
	}
	return nil
}
