// Package money centralizes the fixed-point arithmetic rules shared by the
// caja and pagos modules. All monetary values are stored with exactly two
// decimals; comparisons happen after rounding, never on raw results.
package money

import "github.com/shopspring/decimal"

// Round2 rounds to two decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// CashRound rounds to the nearest multiple of 0.10 (half up at the tenths
// digit). Used only for the EFECTIVO payment channel.
func CashRound(d decimal.Decimal) decimal.Decimal {
	return d.Round(1)
}

// Equal compares two amounts after rounding both to two decimals.
func Equal(a, b decimal.Decimal) bool {
	return Round2(a).Equal(Round2(b))
}

// IsZero2 reports whether the amount rounds to zero at two decimals.
func IsZero2(d decimal.Decimal) bool {
	return Round2(d).IsZero()
}
