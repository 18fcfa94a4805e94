package recon

import (
	"github.com/shopspring/decimal"

	"tradelog/internal/models"
)

// AdjustForSplits restates a stock fill in current post-split terms: quantity
// is scaled by every adjustment factor and price by every price factor for
// splits dated strictly after the fill. Option fills pass through untouched.
// The adjustment is always computed from the raw fill, never from a
// previously adjusted value, so it cannot compound.
//
// Adjusted quantity is rounded to 3 decimal places to suppress ratio drift;
// price is left unrounded (display only, products q*p are preserved).
func AdjustForSplits(fill models.Execution, splits []models.StockSplit) (decimal.Decimal, decimal.Decimal) {
	qty := fill.Quantity
	price := fill.Price
	if fill.SecurityType != models.SecurityStock {
		return qty, price
	}
	adjusted := false
	for _, s := range splits {
		// Malformed splits (missing date, non-positive factors) are skipped
		// rather than poisoning the whole symbol.
		if s.SplitDate.IsZero() {
			continue
		}
		if !s.SplitDate.After(fill.ExecutedAt) {
			continue
		}
		if s.AdjustmentFactor.LessThanOrEqual(decimal.Zero) || s.PriceFactor.LessThanOrEqual(decimal.Zero) {
			continue
		}
		qty = qty.Mul(s.AdjustmentFactor)
		price = price.Mul(s.PriceFactor)
		adjusted = true
	}
	if adjusted {
		qty = qty.Round(3)
	}
	return qty, price
}

// adjustGroupFills rewrites each stock fill of a group with split-adjusted
// quantity and price. Non-stock fills and symbols without splits are copied
// as-is.
func adjustGroupFills(fills []models.Execution, splitsBySymbol map[string][]models.StockSplit) []models.Execution {
	if len(splitsBySymbol) == 0 {
		return fills
	}
	out := make([]models.Execution, len(fills))
	for i, f := range fills {
		splits := splitsBySymbol[f.Underlying]
		if f.SecurityType == models.SecurityStock && len(splits) > 0 {
			f.Quantity, f.Price = AdjustForSplits(f, splits)
		}
		out[i] = f
	}
	return out
}
