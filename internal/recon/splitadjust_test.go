package recon

import (
	"testing"
	"time"

	"tradelog/internal/models"
)

func TestAdjustForSplits_ForwardSplit(t *testing.T) {
	fill := stockFill(1, models.SideBuy, "100", "400", testT0)
	splits := []models.StockSplit{
		split("AAPL", testT0.AddDate(0, 1, 0), "4", "1"),
	}
	qty, price := AdjustForSplits(fill, splits)
	if qty.Cmp(dec("400")) != 0 {
		t.Fatalf("qty=%s want=400", qty.String())
	}
	if price.Cmp(dec("100")) != 0 {
		t.Fatalf("price=%s want=100", price.String())
	}
}

func TestAdjustForSplits_ReverseSplit(t *testing.T) {
	fill := stockFill(1, models.SideBuy, "400", "1", testT0)
	splits := []models.StockSplit{
		split("AAPL", testT0.AddDate(0, 1, 0), "1", "4"),
	}
	qty, price := AdjustForSplits(fill, splits)
	if qty.Cmp(dec("100")) != 0 {
		t.Fatalf("qty=%s want=100", qty.String())
	}
	if price.Cmp(dec("4")) != 0 {
		t.Fatalf("price=%s want=4", price.String())
	}
}

func TestAdjustForSplits_OnlySplitsAfterFillApply(t *testing.T) {
	fill := stockFill(1, models.SideBuy, "100", "400", testT0)
	splits := []models.StockSplit{
		split("AAPL", testT0.AddDate(0, -1, 0), "4", "1"), // before the fill
		split("AAPL", testT0, "4", "1"),                   // same instant, not strictly after
	}
	qty, price := AdjustForSplits(fill, splits)
	if qty.Cmp(dec("100")) != 0 || price.Cmp(dec("400")) != 0 {
		t.Fatalf("qty=%s price=%s want unchanged", qty.String(), price.String())
	}
}

func TestAdjustForSplits_OptionFillUntouched(t *testing.T) {
	fill := optionFill(1, models.SideBuy, "10", "2.50", "100", "", testT0)
	fill.Underlying = "AAPL"
	splits := []models.StockSplit{
		split("AAPL", testT0.AddDate(0, 1, 0), "4", "1"),
	}
	qty, price := AdjustForSplits(fill, splits)
	if qty.Cmp(dec("10")) != 0 || price.Cmp(dec("2.50")) != 0 {
		t.Fatalf("qty=%s price=%s want unchanged", qty.String(), price.String())
	}
}

func TestAdjustForSplits_MalformedSplitSkipped(t *testing.T) {
	fill := stockFill(1, models.SideBuy, "100", "400", testT0)
	missingDate := split("AAPL", time.Time{}, "4", "1")
	good := split("AAPL", testT0.AddDate(0, 1, 0), "2", "1")
	qty, price := AdjustForSplits(fill, []models.StockSplit{missingDate, good})
	if qty.Cmp(dec("200")) != 0 {
		t.Fatalf("qty=%s want=200 (only the well-formed split applies)", qty.String())
	}
	if price.Cmp(dec("200")) != 0 {
		t.Fatalf("price=%s want=200", price.String())
	}
}

// Adjustment must always start from the raw fill: running it twice over the
// same split set yields the same numbers, never a compounded factor.
func TestAdjustForSplits_NeverCompounds(t *testing.T) {
	fill := stockFill(1, models.SideBuy, "100", "400", testT0)
	splits := []models.StockSplit{
		split("AAPL", testT0.AddDate(0, 1, 0), "4", "1"),
	}
	qty1, price1 := AdjustForSplits(fill, splits)
	qty2, price2 := AdjustForSplits(fill, splits)
	if qty1.Cmp(qty2) != 0 || price1.Cmp(price2) != 0 {
		t.Fatalf("second pass diverged: %s@%s vs %s@%s", qty1, price1, qty2, price2)
	}
	if fill.Quantity.Cmp(dec("100")) != 0 || fill.Price.Cmp(dec("400")) != 0 {
		t.Fatalf("input fill mutated: %s@%s", fill.Quantity, fill.Price)
	}
}

func TestAdjustForSplits_QuantityRoundedToThreeDecimals(t *testing.T) {
	fill := stockFill(1, models.SideBuy, "10", "30", testT0)
	splits := []models.StockSplit{
		split("AAPL", testT0.AddDate(0, 1, 0), "1", "3"), // 1:3 reverse
	}
	qty, _ := AdjustForSplits(fill, splits)
	if qty.Cmp(dec("3.333")) != 0 {
		t.Fatalf("qty=%s want=3.333", qty.String())
	}
}
