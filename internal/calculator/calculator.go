// Package calculator evaluates single binary arithmetic expressions like "3 * 4".
package calculator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidFormat is returned when the expression is not "number operator number".
	ErrInvalidFormat = errors.New("invalid expression format, expected: 'number operator number'")

	// ErrInvalidOperand is returned when an operand is not a number.
	ErrInvalidOperand = errors.New("invalid number")

	// ErrInvalidOperator is returned for operators other than + - * /.
	ErrInvalidOperator = errors.New("invalid operator, use +, -, *, /")

	// ErrDivisionByZero is returned when dividing by zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// Evaluate computes a three-token expression separated by whitespace.
func Evaluate(expr string) (float64, error) {
	tokens := strings.Fields(expr)
	if len(tokens) != 3 {
		return 0, fmt.Errorf("%w: got %d tokens", ErrInvalidFormat, len(tokens))
	}

	a, err := parseOperand(tokens[0])
	if err != nil {
		return 0, fmt.Errorf("first operand: %w", err)
	}
	b, err := parseOperand(tokens[2])
	if err != nil {
		return 0, fmt.Errorf("second operand: %w", err)
	}

	switch tokens[1] {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidOperator, tokens[1])
	}
}

func parseOperand(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOperand, s)
	}
	return v, nil
}
