package recon

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"tradelog/internal/models"
)

// MatchLots reconciles the opening and closing sides of one contract group
// into a MatchedLegPair. Matching is on min(opening, closing) quantity; a
// closing overhang (assignment or rounding mismatch) is surfaced as a
// close_exceeds_open warning instead of being silently truncated, and a
// group with closes but no opens gets a no_opening_fills warning.
func MatchLots(group ContractGroup, classified []ClassifiedFill) (MatchedLegPair, []Warning) {
	pair := MatchedLegPair{
		Key:        group.Key,
		Strike:     group.Strike,
		OptionType: group.OptionType,
		Expiration: group.Expiration,
	}

	openQty := decimal.Zero
	openValue := decimal.Zero
	closeQty := decimal.Zero
	closeValue := decimal.Zero
	anyOpeningBuy := false
	hasOpening := false
	var openedAt, closedAt *time.Time

	for _, f := range classified {
		if f.Opening {
			hasOpening = true
			openQty = openQty.Add(f.Quantity)
			openValue = openValue.Add(f.Price.Mul(f.Quantity))
			pair.OpenCommission = pair.OpenCommission.Add(f.Commission)
			if f.Side == models.SideBuy {
				anyOpeningBuy = true
			}
			if openedAt == nil {
				t := f.ExecutedAt
				openedAt = &t
			}
		} else {
			closeQty = closeQty.Add(f.Quantity)
			closeValue = closeValue.Add(f.Price.Mul(f.Quantity))
			pair.CloseCommission = pair.CloseCommission.Add(f.Commission)
			t := f.ExecutedAt
			closedAt = &t
		}
	}

	pair.OpeningQty = openQty
	pair.ClosingQty = closeQty
	pair.OpeningPrice = weightedPrice(openValue, openQty)
	pair.ClosingPrice = weightedPrice(closeValue, closeQty)
	pair.MatchedQty = decimal.Min(openQty, closeQty)
	pair.Quantity = decimal.Max(openQty, closeQty)
	pair.Long = anyOpeningBuy
	pair.Multiplier = groupMultiplier(group)
	pair.IsOpen = closeQty.IsZero()
	pair.OpenedAt = openedAt
	pair.ClosedAt = closedAt

	var warnings []Warning
	if !hasOpening && closeQty.Sign() > 0 {
		warnings = append(warnings, Warning{
			Code:   WarnNoOpeningFills,
			Key:    group.Key,
			Detail: fmt.Sprintf("closing quantity %s with no opening fills", closeQty.String()),
		})
	} else if closeQty.GreaterThan(openQty) {
		warnings = append(warnings, Warning{
			Code:   WarnCloseExceedsOpen,
			Key:    group.Key,
			Detail: fmt.Sprintf("closing quantity %s exceeds opening quantity %s", closeQty.String(), openQty.String()),
		})
	}

	if closeQty.Sign() > 0 {
		diff := pair.ClosingPrice.Sub(pair.OpeningPrice)
		if !pair.Long {
			diff = pair.OpeningPrice.Sub(pair.ClosingPrice)
		}
		pnl := diff.Mul(pair.MatchedQty).Mul(pair.Multiplier).
			Sub(pair.OpenCommission).Sub(pair.CloseCommission)
		pair.NetPnL = &pnl
	}

	return pair, warnings
}

func weightedPrice(value, qty decimal.Decimal) decimal.Decimal {
	if qty.Sign() <= 0 {
		return decimal.Zero
	}
	return value.Div(qty)
}

// groupMultiplier is 1 for stock, else the declared contract multiplier of
// the group's fills (100 for standard equity options).
func groupMultiplier(group ContractGroup) decimal.Decimal {
	for _, f := range group.Fills {
		if f.SecurityType == models.SecurityStock {
			return decimal.NewFromInt(1)
		}
		if f.Multiplier > 0 {
			return decimal.NewFromInt(f.Multiplier)
		}
	}
	return decimal.NewFromInt(1)
}
