package recon

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BuildSummary rolls matched pairs and display rows up into the trade-level
// view. It reads pairs and rows only; raw fills are never re-inspected here.
func BuildSummary(opts Options, now time.Time, underlying string, category Category, direction Direction, pairs []MatchedLegPair, rows []AggregatedLegRow) TradeSummary {
	summary := TradeSummary{
		TradeID:    opts.TradeID,
		Underlying: underlying,
		Category:   category,
		Direction:  direction,
	}

	summary.Strikes = joinStrikes(pairs)
	summary.Expiration = minExpiration(pairs)
	if summary.Expiration != nil {
		dte := daysBetween(now, *summary.Expiration)
		summary.DTE = &dte
	}

	openQty := decimal.Zero
	openValue := decimal.Zero
	realized := decimal.Zero
	for _, pair := range pairs {
		openQty = openQty.Add(pair.OpeningQty)
		openValue = openValue.Add(pair.OpeningPrice.Mul(pair.OpeningQty))
		summary.CostBasis = summary.CostBasis.Add(pair.OpeningPrice.Mul(pair.OpeningQty).Mul(pair.Multiplier))
		if pair.NetPnL != nil {
			realized = realized.Add(*pair.NetPnL)
		}
		if pair.ClosingQty.LessThan(pair.OpeningQty) {
			summary.IsOpen = true
		}
	}
	summary.AvgOpenPrice = weightedPrice(openValue, openQty)
	summary.RealizedPnL = realized

	for _, row := range rows {
		summary.NetValue = summary.NetValue.Add(row.TotalValue)
		summary.TotalCommission = summary.TotalCommission.Add(row.Commission)
		summary.FillCount += row.FillCount
	}

	summary.Quantity = structuralQuantity(category, pairs, rows)
	return summary
}

// structuralQuantity is the trade size shown in the journal: stocks use the
// net signed position, spreads use the smallest leg as the structural size.
func structuralQuantity(category Category, pairs []MatchedLegPair, rows []AggregatedLegRow) decimal.Decimal {
	if category == CategoryStocks {
		net := decimal.Zero
		for _, row := range rows {
			qty := row.Quantity
			if row.Action == ActionSTO || row.Action == ActionSTC {
				qty = qty.Neg()
			}
			net = net.Add(qty)
		}
		return net
	}
	smallest := decimal.Zero
	for i, pair := range pairs {
		if i == 0 || pair.Quantity.LessThan(smallest) {
			smallest = pair.Quantity
		}
	}
	return smallest
}

func joinStrikes(pairs []MatchedLegPair) string {
	seen := map[string]struct{}{}
	strikes := make([]decimal.Decimal, 0, len(pairs))
	for _, pair := range pairs {
		if pair.Strike == nil {
			continue
		}
		key := pair.Strike.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		strikes = append(strikes, *pair.Strike)
	}
	sort.Slice(strikes, func(a, b int) bool {
		return strikes[a].LessThan(strikes[b])
	})
	parts := make([]string, 0, len(strikes))
	for _, s := range strikes {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, "/")
}

func minExpiration(pairs []MatchedLegPair) *time.Time {
	var earliest *time.Time
	for _, pair := range pairs {
		if pair.Expiration == nil {
			continue
		}
		if earliest == nil || pair.Expiration.Before(*earliest) {
			t := *pair.Expiration
			earliest = &t
		}
	}
	return earliest
}

func daysBetween(now, expiration time.Time) int {
	today := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC)
	return int(expiration.Sub(today).Hours() / 24)
}
