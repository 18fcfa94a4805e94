package recon

import (
	"github.com/shopspring/decimal"

	"tradelog/internal/models"
)

var oneUnit = decimal.NewFromInt(1)

// NormalizeFills drops sub-unit noise fills (price-improvement rebates with
// quantity below one share/contract) and preserves input order. An empty
// result is valid: the trade simply shows no legs.
func NormalizeFills(fills []models.Execution) []models.Execution {
	out := make([]models.Execution, 0, len(fills))
	for _, f := range fills {
		if f.Quantity.Abs().LessThan(oneUnit) {
			continue
		}
		out = append(out, f)
	}
	return out
}
