// Package pricing holds the pure invoice arithmetic: tax buckets, the
// discount stack, tender settlement and loyalty earning. Nothing here
// performs I/O.
package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Round rounds a money amount to cents, half away from zero
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// PercentOf returns pct percent of base
func PercentOf(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(hundred)
}

// positive clamps negative amounts to zero
func positive(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
