package kernel

import "fmt"

// Money is an amount in integer cents. Ledger arithmetic stays exact by never
// touching floating point; percentages are expressed in basis points.
//
// Money is a plain value: negative amounts are meaningful in ledger entries
// (debits), and the aggregates that must stay non-negative enforce that
// themselves.
type Money int64

// MoneyFromCents builds a Money from an amount in cents.
func MoneyFromCents(cents int64) Money {
	return Money(cents)
}

// MoneyFromUnits builds a Money from an amount in whole currency units.
func MoneyFromUnits(units int64) Money {
	return Money(units * 100)
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return int64(m)
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return m + other
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return m - other
}

// Neg returns the negated amount, used when writing debit ledger entries.
func (m Money) Neg() Money {
	return -m
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m < 0
}

// IsPositive reports whether the amount is above zero.
func (m Money) IsPositive() bool {
	return m > 0
}

// PercentBP returns the given share of the amount expressed in basis points
// (100 bp = 1%), rounded half-up to the nearest cent.
func (m Money) PercentBP(basisPoints int64) Money {
	raw := int64(m) * basisPoints
	if raw >= 0 {
		return Money((raw + 5000) / 10000)
	}
	return Money((raw - 5000) / 10000)
}

// Float64 returns the amount in whole currency units as a float, for API responses.
func (m Money) Float64() float64 {
	return float64(m) / 100
}

// String implements fmt.Stringer, formatting the amount with two decimals.
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
