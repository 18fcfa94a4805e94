package recon

import (
	"sort"

	"github.com/shopspring/decimal"

	"tradelog/internal/models"
)

// ActionFor maps side x open/close onto the canonical action label.
func ActionFor(side string, opening bool) string {
	if side == models.SideBuy {
		if opening {
			return ActionBTO
		}
		return ActionBTC
	}
	if opening {
		return ActionSTO
	}
	return ActionSTC
}

// AggregateActions collapses a group's fills into one display row per action
// label, with summed quantity, quantity-weighted average price, signed total
// value and summed commission.
func AggregateActions(group ContractGroup, classified []ClassifiedFill) []AggregatedLegRow {
	index := map[string]int{}
	rows := make([]AggregatedLegRow, 0, 2)
	values := make([]decimal.Decimal, 0, 2)

	for _, f := range classified {
		action := ActionFor(f.Side, f.Opening)
		i, ok := index[action]
		if !ok {
			i = len(rows)
			index[action] = i
			rows = append(rows, AggregatedLegRow{
				Key:        group.Key,
				Strike:     group.Strike,
				OptionType: group.OptionType,
				Expiration: group.Expiration,
				Action:     action,
			})
			values = append(values, decimal.Zero)
		}
		row := &rows[i]
		value := f.Price.Mul(f.Quantity)
		row.Quantity = row.Quantity.Add(f.Quantity)
		row.Commission = row.Commission.Add(f.Commission)
		row.FillCount++
		values[i] = values[i].Add(value)

		signed := value.Mul(groupMultiplier(group))
		if f.Side == models.SideSell {
			signed = signed.Neg()
		}
		row.TotalValue = row.TotalValue.Add(signed)
	}

	for i := range rows {
		rows[i].AvgPrice = weightedPrice(values[i], rows[i].Quantity)
	}
	return rows
}

// SortRows orders display rows by ascending strike, with buy actions
// (BTO/BTC) before sell actions (STO/STC) at equal strike. Stock rows carry
// no strike and sort first.
func SortRows(rows []AggregatedLegRow) {
	sort.SliceStable(rows, func(a, b int) bool {
		cmp := compareStrikes(rows[a].Strike, rows[b].Strike)
		if cmp != 0 {
			return cmp < 0
		}
		return actionRank(rows[a].Action) < actionRank(rows[b].Action)
	})
}

func compareStrikes(a, b *decimal.Decimal) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Cmp(*b)
}

func actionRank(action string) int {
	switch action {
	case ActionBTO:
		return 0
	case ActionBTC:
		return 1
	case ActionSTO:
		return 2
	case ActionSTC:
		return 3
	}
	return 4
}
