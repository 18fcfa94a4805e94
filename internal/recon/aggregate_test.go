package recon

import (
	"testing"

	"tradelog/internal/models"
)

func TestActionFor(t *testing.T) {
	tests := []struct {
		side    string
		opening bool
		want    string
	}{
		{models.SideBuy, true, ActionBTO},
		{models.SideBuy, false, ActionBTC},
		{models.SideSell, true, ActionSTO},
		{models.SideSell, false, ActionSTC},
	}
	for _, tt := range tests {
		if got := ActionFor(tt.side, tt.opening); got != tt.want {
			t.Fatalf("ActionFor(%s, %v)=%s want=%s", tt.side, tt.opening, got, tt.want)
		}
	}
}

func TestAggregateActions_Totals(t *testing.T) {
	fills := []models.Execution{
		withCommission(optionFill(1, models.SideBuy, "10", "2.00", "100", "", at(0)), "1"),
		withCommission(optionFill(2, models.SideBuy, "10", "3.00", "100", "", at(1)), "1"),
		withCommission(optionFill(3, models.SideSell, "20", "4.00", "100", "", at(2)), "2"),
	}
	groups := GroupFills(fills)
	rows := AggregateActions(groups[0], ClassifyFills(groups[0].Fills))
	if len(rows) != 2 {
		t.Fatalf("rows=%d want=2 (BTO and STC)", len(rows))
	}

	bto := rows[0]
	if bto.Action != ActionBTO {
		t.Fatalf("first row action=%s want=BTO", bto.Action)
	}
	if bto.Quantity.Cmp(dec("20")) != 0 {
		t.Fatalf("BTO quantity=%s want=20", bto.Quantity.String())
	}
	if bto.AvgPrice.Cmp(dec("2.5")) != 0 {
		t.Fatalf("BTO avg price=%s want=2.5", bto.AvgPrice.String())
	}
	// (10*2 + 10*3) * 100 = 5000 debit
	if bto.TotalValue.Cmp(dec("5000")) != 0 {
		t.Fatalf("BTO total value=%s want=5000", bto.TotalValue.String())
	}
	if bto.Commission.Cmp(dec("2")) != 0 || bto.FillCount != 2 {
		t.Fatalf("BTO commission=%s fills=%d want 2/2", bto.Commission.String(), bto.FillCount)
	}

	stc := rows[1]
	if stc.Action != ActionSTC {
		t.Fatalf("second row action=%s want=STC", stc.Action)
	}
	// 20*4 * 100 = 8000 credit, negative by convention.
	if stc.TotalValue.Cmp(dec("-8000")) != 0 {
		t.Fatalf("STC total value=%s want=-8000", stc.TotalValue.String())
	}
}

func TestSortRows(t *testing.T) {
	lowStrike := decPtr("95")
	highStrike := decPtr("105")
	rows := []AggregatedLegRow{
		{Strike: highStrike, Action: ActionSTO},
		{Strike: lowStrike, Action: ActionSTO},
		{Strike: lowStrike, Action: ActionBTO},
		{Strike: nil, Action: ActionBTC}, // stock row, no strike
	}
	SortRows(rows)

	if rows[0].Strike != nil {
		t.Fatalf("stock row should sort first")
	}
	if rows[1].Strike.Cmp(dec("95")) != 0 || rows[1].Action != ActionBTO {
		t.Fatalf("row 1 = %s %s, want 95 BTO", rows[1].Strike.String(), rows[1].Action)
	}
	if rows[2].Strike.Cmp(dec("95")) != 0 || rows[2].Action != ActionSTO {
		t.Fatalf("row 2 = %s %s, want 95 STO", rows[2].Strike.String(), rows[2].Action)
	}
	if rows[3].Strike.Cmp(dec("105")) != 0 {
		t.Fatalf("row 3 strike = %s, want 105", rows[3].Strike.String())
	}
}
