package calculator

import (
	"errors"
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"1 + 2", 3},
		{"10 - 4.5", 5.5},
		{"3 * -2", -6},
		{"9 / 2", 4.5},
		{"  7   *   6  ", 42},
		{"1e3 + 1", 1001},
		{"0 / 5", 0},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Evaluate(tt.expr)
			if err != nil {
				t.Fatalf("Evaluate(%q) error = %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		expr    string
		wantErr error
	}{
		{"", ErrInvalidFormat},
		{"1 +", ErrInvalidFormat},
		{"1+2", ErrInvalidFormat},
		{"1 + 2 + 3", ErrInvalidFormat},
		{"a + 2", ErrInvalidOperand},
		{"1 + b", ErrInvalidOperand},
		{"1 % 2", ErrInvalidOperator},
		{"1 ^ 2", ErrInvalidOperator},
		{"1 / 0", ErrDivisionByZero},
		{"1 / -0", ErrDivisionByZero},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := Evaluate(tt.expr)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Evaluate(%q) error = %v, want %v", tt.expr, err, tt.wantErr)
			}
		})
	}
}
