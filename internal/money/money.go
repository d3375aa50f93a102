package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amounts are stored as int64 minor units with four fractional digits,
// so 1.5 is 15000. Four places is the precision of the input format.
const Scale = 4

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrTooManyDecimals = errors.New("amount has too many decimal places")
)

// ParseAmount parses a decimal string into minor units. Input amounts must be
// non-negative and carry at most four decimal places.
func ParseAmount(input string) (int64, error) {
	value, err := decimal.NewFromString(input)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if value.IsNegative() {
		return 0, ErrNegativeAmount
	}
	if value.Exponent() < -Scale {
		return 0, ErrTooManyDecimals
	}
	return value.Shift(Scale).IntPart(), nil
}

// FormatMinor renders minor units as a fixed four-place decimal string.
// Negative values occur when a dispute reclaims already-withdrawn funds.
func FormatMinor(value int64) string {
	negative := value < 0
	if negative {
		value = -value
	}
	whole := value / 10000
	frac := value % 10000
	formatted := fmt.Sprintf("%d.%04d", whole, frac)
	if negative {
		return "-" + formatted
	}
	return formatted
}
