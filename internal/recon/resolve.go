package recon

import (
	"strings"

	"github.com/shopspring/decimal"

	"tradelog/internal/models"
)

var (
	longHints  = []string{"long", "bull"}
	shortHints = []string{"short", "bear", "naked"}
)

// ResolveCategory classifies a trade from its fill mix: all-stock trades are
// stocks, single-leg trades are options, everything else is a combo.
func ResolveCategory(fills []models.Execution, legCount int) Category {
	if len(fills) == 0 {
		return CategoryStocks
	}
	allStock := true
	for _, f := range fills {
		if f.SecurityType != models.SecurityStock {
			allStock = false
			break
		}
	}
	if allStock {
		return CategoryStocks
	}
	if legCount <= 1 {
		return CategoryOptions
	}
	return CategoryCombos
}

// ResolveDirection applies the three-tier fallback in strict priority order:
// strategy-name hint, then the first opening fill's side, then the sign of
// the net opening cost (debit means long, credit means short).
func ResolveDirection(strategyName string, classified []ClassifiedFill) Direction {
	if dir, ok := directionFromHint(strategyName); ok {
		return dir
	}
	if dir, ok := directionFromFirstOpen(classified); ok {
		return dir
	}
	return directionFromNetCost(classified)
}

func directionFromHint(strategyName string) (Direction, bool) {
	name := strings.ToLower(strings.TrimSpace(strategyName))
	if name == "" {
		return "", false
	}
	for _, hint := range longHints {
		if strings.Contains(name, hint) {
			return DirectionLong, true
		}
	}
	for _, hint := range shortHints {
		if strings.Contains(name, hint) {
			return DirectionShort, true
		}
	}
	return "", false
}

func directionFromFirstOpen(classified []ClassifiedFill) (Direction, bool) {
	for _, f := range classified {
		if !f.Opening {
			continue
		}
		if f.Side == models.SideBuy {
			return DirectionLong, true
		}
		return DirectionShort, true
	}
	return "", false
}

func directionFromNetCost(classified []ClassifiedFill) Direction {
	net := decimal.Zero
	for _, f := range classified {
		if !f.Opening {
			continue
		}
		value := f.Price.Mul(f.Quantity)
		if f.Side == models.SideSell {
			value = value.Neg()
		}
		net = net.Add(value)
	}
	if net.Sign() < 0 {
		return DirectionShort
	}
	return DirectionLong
}
