package model

import "math"

// Money is a currency amount in minor units (paise). All arithmetic on
// amounts is integral; conversion to and from decimal rupees happens only at
// the API boundary.
type Money int64

// MoneyFromFloat converts decimal currency units to minor units, rounding
// half away from zero.
func MoneyFromFloat(v float64) Money {
	return Money(math.Round(v * 100))
}

// Float64 returns the amount in decimal currency units.
func (m Money) Float64() float64 {
	return float64(m) / 100
}

// Share returns the portion of m corresponding to pct percent, rounded to
// the nearest minor unit.
func (m Money) Share(pct float64) Money {
	return Money(math.Round(float64(m) * pct / 100))
}
