package calc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput indicates a malformed or out-of-range operand.
// All validation failures wrap this sentinel.
var ErrInvalidInput = errors.New("calc: invalid input")

// ParseOperand converts raw user input into a decimal operand.
// Scientific notation is accepted; anything the decimal parser rejects
// (including empty input, NaN and infinities) fails validation.
func ParseOperand(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("empty operand: %w", ErrInvalidInput)
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("operand %q is not a number: %w", raw, ErrInvalidInput)
	}
	return d, nil
}

// CheckMagnitude rejects operands whose absolute value exceeds the
// configured limit.
func CheckMagnitude(v, maxAbs decimal.Decimal) error {
	if v.Abs().GreaterThan(maxAbs) {
		return fmt.Errorf("operand %s exceeds the allowed magnitude %s: %w", v, maxAbs, ErrInvalidInput)
	}
	return nil
}
