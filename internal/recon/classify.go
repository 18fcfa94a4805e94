package recon

import (
	"strings"

	"github.com/shopspring/decimal"

	"tradelog/internal/models"
)

// ClassifiedFill is a fill labeled as opening or closing exposure.
type ClassifiedFill struct {
	models.Execution
	Opening bool `json:"opening"`
}

// ClassifyFills labels each fill of a time-sorted contract group as opening
// or closing. An explicit broker O/C indicator always wins; otherwise the
// label comes from a running signed-position scan:
//
//	flat position        -> opening (establishes new exposure, either side)
//	delta opposes sign   -> closing (reduces magnitude)
//	delta grows position -> opening (adds to existing exposure)
//
// The position accumulates after classification, which handles partial
// closes followed by re-opens within the same contract key.
func ClassifyFills(fills []models.Execution) []ClassifiedFill {
	out := make([]ClassifiedFill, 0, len(fills))
	position := decimal.Zero
	for _, f := range fills {
		delta := f.Quantity
		if f.Side == models.SideSell {
			delta = delta.Neg()
		}
		opening := inferOpening(position, delta)
		if explicit, ok := explicitIndicator(f.OpenClose); ok {
			opening = explicit
		}
		out = append(out, ClassifiedFill{Execution: f, Opening: opening})
		position = position.Add(delta)
	}
	return out
}

func inferOpening(position, delta decimal.Decimal) bool {
	if position.IsZero() {
		return true
	}
	if position.Sign() != delta.Sign() {
		return false
	}
	return true
}

func explicitIndicator(indicator *string) (opening bool, ok bool) {
	if indicator == nil {
		return false, false
	}
	switch strings.ToUpper(strings.TrimSpace(*indicator)) {
	case models.IndicatorOpen:
		return true, true
	case models.IndicatorClose:
		return false, true
	}
	return false, false
}
