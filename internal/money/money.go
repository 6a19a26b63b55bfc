// Package money implements a fixed-point currency amount.
//
// A Money value is a signed count of 1/10000 currency units. All arithmetic is
// exact integer arithmetic; overflow is reported instead of wrapping.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Precision is the number of fractional digits carried by every amount.
const Precision = 4

// Scale is the number of units in one whole currency unit.
const Scale = 10000

var (
	// ErrOverflow is returned when a result does not fit in the unit range.
	ErrOverflow = errors.New("money overflow")
	// ErrInvalidAmount is returned for strings that are not plain decimal amounts.
	ErrInvalidAmount = errors.New("invalid amount")
)

var (
	maxUnits = decimal.NewFromInt(math.MaxInt64)
	minUnits = decimal.NewFromInt(math.MinInt64)
)

// Money is an amount in units of 1/Scale.
type Money int64

// Zero is the zero amount.
const Zero Money = 0

// FromDecimal converts d to Money exactly. Values with more than Precision
// significant fractional digits are rejected rather than rounded.
func FromDecimal(d decimal.Decimal) (Money, error) {
	units := d.Shift(Precision)
	if !units.IsInteger() {
		return 0, fmt.Errorf("%w: %s has more than %d decimal places", ErrInvalidAmount, d, Precision)
	}
	if units.GreaterThan(maxUnits) || units.LessThan(minUnits) {
		return 0, fmt.Errorf("%w: %s", ErrOverflow, d)
	}
	return Money(units.IntPart()), nil
}

// Parse reads a decimal string such as "12", "12.5", "12." or "-0.0001".
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	body := strings.TrimPrefix(s, "-")
	if !isPlainDecimal(body) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	// "12." and ".5" are accepted; normalize them for the decimal parser.
	if strings.HasSuffix(body, ".") {
		body += "0"
	}
	if strings.HasPrefix(body, ".") {
		body = "0" + body
	}
	if neg {
		body = "-" + body
	}

	d, err := decimal.NewFromString(body)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return FromDecimal(d)
}

// isPlainDecimal reports whether s is digits with at most one '.', and at
// least one digit. Exponents and signs are not allowed.
func isPlainDecimal(s string) bool {
	digits := 0
	dot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return digits > 0
}

// Add returns m+o, or ErrOverflow.
func (m Money) Add(o Money) (Money, error) {
	if (o > 0 && m > math.MaxInt64-o) || (o < 0 && m < math.MinInt64-o) {
		return 0, fmt.Errorf("%w: %s + %s", ErrOverflow, m, o)
	}
	return m + o, nil
}

// Sub returns m-o, or ErrOverflow. Negative results are legal.
func (m Money) Sub(o Money) (Money, error) {
	if (o < 0 && m > math.MaxInt64+o) || (o > 0 && m < math.MinInt64+o) {
		return 0, fmt.Errorf("%w: %s - %s", ErrOverflow, m, o)
	}
	return m - o, nil
}

// Cmp returns -1, 0 or +1 depending on whether m is less than, equal to or
// greater than o.
func (m Money) Cmp(o Money) int {
	switch {
	case m < o:
		return -1
	case m > o:
		return 1
	default:
		return 0
	}
}

func (m Money) IsZero() bool     { return m == 0 }
func (m Money) IsPositive() bool { return m > 0 }
func (m Money) IsNegative() bool { return m < 0 }

// Decimal returns m as a decimal.Decimal in whole currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -Precision)
}

// String renders m with exactly Precision fractional digits, e.g. "1.5000".
func (m Money) String() string {
	return m.Decimal().StringFixed(Precision)
}
