package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of fractional digits carried by every amount.
const MoneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// Quantize rounds d to exactly two decimal places using banker's rounding.
func Quantize(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(MoneyPlaces)
}

// ZeroMoney returns 0.00.
func ZeroMoney() decimal.Decimal {
	return Quantize(decimal.Zero)
}

// ParseMoney parses s and quantizes it to two decimal places.
func ParseMoney(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a decimal amount", ErrInvalidAmount, s)
	}
	return Quantize(d), nil
}

// MustMoney is ParseMoney for constants and tests.
func MustMoney(s string) decimal.Decimal {
	d, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return d
}

// HasMoneyPrecision reports whether d carries at most two fractional digits.
func HasMoneyPrecision(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyPlaces))
}

// SafePercent returns part/whole*100 rounded to two places, or zero when
// whole is zero.
func SafePercent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return ZeroMoney()
	}
	return Quantize(part.Div(whole).Mul(hundred))
}
