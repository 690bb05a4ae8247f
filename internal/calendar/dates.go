package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DateLayout is the YYYY-MM-DD layout used in API payloads and CLI flags.
const DateLayout = "2006-01-02"

var weekdayNames = [7]string{"日", "一", "二", "三", "四", "五", "六"}

var datePattern = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)

// WeekdayName returns the single-character Chinese weekday name, "日" for Sunday.
func WeekdayName(d time.Weekday) string {
	if d < time.Sunday || d > time.Saturday {
		return ""
	}
	return weekdayNames[d]
}

// ParseDateString parses a date like "2024-02-10" or "2024-2-10".
//
// Returns: year, month, day, error
func ParseDateString(s string) (int, int, int, error) {
	matches := datePattern.FindStringSubmatch(s)
	if len(matches) != 4 {
		return 0, 0, 0, fmt.Errorf("invalid date format: %q (expected YYYY-MM-DD)", s)
	}

	year, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year: %w", err)
	}
	month, err := strconv.Atoi(matches[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month: %w", err)
	}
	day, err := strconv.Atoi(matches[3])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid day: %w", err)
	}

	if month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("invalid month: %d", month)
	}
	if day < 1 || day > DaysIn(year, month) {
		return 0, 0, 0, fmt.Errorf("invalid day: %d-%02d has no day %d", year, month, day)
	}

	return year, month, day, nil
}

// FormatDate formats a Gregorian date as YYYY-MM-DD.
func FormatDate(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// DaysIn returns the number of days in a Gregorian month.
func DaysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Today truncates now to its UTC calendar date.
func Today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
