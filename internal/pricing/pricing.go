// Package pricing computes final prices from a USD base plus a chain of
// percentage adjustments. Prices are never stored precomputed: every read
// recomputes from the persisted base and percentages, so changing a
// percentage is immediately visible everywhere.
package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// factor converts a percentage into a multiplier: 21 → 1.21, -10 → 0.90.
func factor(pct decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(pct.Div(hundred))
}

// AdminPrice applies the three-stage chain markup → impuestos → IVA on the
// base USD price. Each stage multiplies the running total, so the stages
// compound rather than add. Result is rounded to 4 decimal places.
func AdminPrice(base, markupPct, impuestosPct, ivaPct decimal.Decimal) decimal.Decimal {
	return base.
		Mul(factor(markupPct)).
		Mul(factor(impuestosPct)).
		Mul(factor(ivaPct)).
		Round(4)
}

// UserPrice applies a per-user discount on top of an admin price.
// No clamping happens here: callers are responsible for keeping the
// discount inside 0..100 before it reaches this function.
func UserPrice(adminUsd, descuentoPct decimal.Decimal) decimal.Decimal {
	return adminUsd.Mul(decimal.NewFromInt(1).Sub(descuentoPct.Div(hundred))).Round(4)
}
