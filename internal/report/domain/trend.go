package domain

import "github.com/shopspring/decimal"

// PercentChange returns (current − previous) / previous × 100. A zero
// previous period yields 0 for any current value, never a division error.
func PercentChange(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		return 0
	}
	return current.Sub(previous).
		Div(previous).
		Mul(decimal.NewFromInt(100)).
		InexactFloat64()
}
