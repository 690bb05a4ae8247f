package lunar

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned for dates outside the span covered by the table.
	ErrOutOfRange = errors.New("date out of supported range")

	// ErrConversion is returned when the table yields an impossible result.
	// It indicates a malformed record, never bad input.
	ErrConversion = errors.New("lunar conversion failed")

	// ErrInvalidDate is returned for year/month/day combinations that do not exist.
	ErrInvalidDate = errors.New("invalid date")
)

// DateError records the operation and input that failed.
type DateError struct {
	Op    string
	Year  int
	Month int
	Day   int
	Err   error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("%s %04d-%02d-%02d: %v", e.Op, e.Year, e.Month, e.Day, e.Err)
}

func (e *DateError) Unwrap() error {
	return e.Err
}

func dateError(op string, year, month, day int, err error) error {
	return &DateError{Op: op, Year: year, Month: month, Day: day, Err: err}
}
