package recon

import (
	"testing"
	"time"
)

func TestBuildSummary_SpreadRollup(t *testing.T) {
	now := time.Date(2026, 9, 8, 12, 0, 0, 0, time.UTC)
	pnlLong := dec("998")
	pnlShort := dec("-502")
	pairs := []MatchedLegPair{
		{
			Strike:       decPtr("100"),
			Expiration:   timePtr(testExpiry),
			OpeningQty:   dec("10"),
			OpeningPrice: dec("2"),
			ClosingQty:   dec("10"),
			Quantity:     dec("10"),
			Multiplier:   dec("100"),
			NetPnL:       &pnlLong,
			Long:         true,
		},
		{
			Strike:       decPtr("105"),
			Expiration:   timePtr(testExpiry),
			OpeningQty:   dec("10"),
			OpeningPrice: dec("1"),
			ClosingQty:   dec("10"),
			Quantity:     dec("10"),
			Multiplier:   dec("100"),
			NetPnL:       &pnlShort,
		},
	}
	rows := []AggregatedLegRow{
		{Action: ActionBTO, Quantity: dec("10"), TotalValue: dec("2000"), Commission: dec("1"), FillCount: 1},
		{Action: ActionSTC, Quantity: dec("10"), TotalValue: dec("-3000"), Commission: dec("1"), FillCount: 1},
		{Action: ActionSTO, Quantity: dec("10"), TotalValue: dec("-1000"), Commission: dec("1"), FillCount: 1},
		{Action: ActionBTC, Quantity: dec("10"), TotalValue: dec("1500"), Commission: dec("1"), FillCount: 1},
	}

	s := BuildSummary(Options{TradeID: 42}, now, "SPY", CategoryCombos, DirectionLong, pairs, rows)

	if s.Strikes != "100/105" {
		t.Fatalf("strikes=%q want=100/105", s.Strikes)
	}
	if s.Expiration == nil || !s.Expiration.Equal(testExpiry) {
		t.Fatalf("expiration=%v want=%v", s.Expiration, testExpiry)
	}
	if s.DTE == nil || *s.DTE != 10 {
		t.Fatalf("dte=%v want=10", s.DTE)
	}
	if s.RealizedPnL.Cmp(dec("496")) != 0 {
		t.Fatalf("realized=%s want=496", s.RealizedPnL.String())
	}
	// (10*2 + 10*1) / 20 = 1.5 weighted across both legs.
	if s.AvgOpenPrice.Cmp(dec("1.5")) != 0 {
		t.Fatalf("avg open price=%s want=1.5", s.AvgOpenPrice.String())
	}
	// 10*2*100 + 10*1*100 = 3000 gross opening outlay.
	if s.CostBasis.Cmp(dec("3000")) != 0 {
		t.Fatalf("cost basis=%s want=3000", s.CostBasis.String())
	}
	// 2000 - 3000 - 1000 + 1500 = -500 net credit overall.
	if s.NetValue.Cmp(dec("-500")) != 0 {
		t.Fatalf("net value=%s want=-500", s.NetValue.String())
	}
	if s.TotalCommission.Cmp(dec("4")) != 0 || s.FillCount != 4 {
		t.Fatalf("commission=%s fills=%d want 4/4", s.TotalCommission.String(), s.FillCount)
	}
	if s.IsOpen {
		t.Fatalf("all legs closed but summary is open")
	}
	if s.Quantity.Cmp(dec("10")) != 0 {
		t.Fatalf("quantity=%s want=10", s.Quantity.String())
	}
}

func TestBuildSummary_OpenWhenAnyLegOpen(t *testing.T) {
	pairs := []MatchedLegPair{
		{OpeningQty: dec("10"), ClosingQty: dec("10"), Quantity: dec("10"), Multiplier: dec("100")},
		{OpeningQty: dec("10"), ClosingQty: dec("4"), Quantity: dec("10"), Multiplier: dec("100")},
	}
	s := BuildSummary(Options{TradeID: 1}, time.Now(), "SPY", CategoryCombos, DirectionLong, pairs, nil)
	if !s.IsOpen {
		t.Fatalf("partially closed leg must keep the trade open")
	}
}

func TestBuildSummary_StockQuantityIsNetSigned(t *testing.T) {
	rows := []AggregatedLegRow{
		{Action: ActionBTO, Quantity: dec("100"), TotalValue: dec("5000"), FillCount: 1},
		{Action: ActionSTC, Quantity: dec("40"), TotalValue: dec("-2200"), FillCount: 1},
	}
	pairs := []MatchedLegPair{
		{OpeningQty: dec("100"), ClosingQty: dec("40"), Quantity: dec("100"), Multiplier: dec("1")},
	}
	s := BuildSummary(Options{TradeID: 1}, time.Now(), "AAPL", CategoryStocks, DirectionLong, pairs, rows)
	if s.Quantity.Cmp(dec("60")) != 0 {
		t.Fatalf("net quantity=%s want=60", s.Quantity.String())
	}
	if s.Strikes != "" || s.Expiration != nil || s.DTE != nil {
		t.Fatalf("stock summary must not carry option fields")
	}
}

func TestJoinStrikes_DedupesAndSorts(t *testing.T) {
	pairs := []MatchedLegPair{
		{Strike: decPtr("105")},
		{Strike: decPtr("95")},
		{Strike: decPtr("105")},
		{Strike: nil},
	}
	if got := joinStrikes(pairs); got != "95/105" {
		t.Fatalf("strikes=%q want=95/105", got)
	}
}

func TestDaysBetween_CountsFromDayStart(t *testing.T) {
	now := time.Date(2026, 9, 17, 23, 59, 0, 0, time.UTC)
	if got := daysBetween(now, testExpiry); got != 1 {
		t.Fatalf("dte=%d want=1 (late-day clock must not shrink it)", got)
	}
	expired := time.Date(2026, 9, 25, 1, 0, 0, 0, time.UTC)
	if got := daysBetween(expired, testExpiry); got != -7 {
		t.Fatalf("dte=%d want=-7 after expiry", got)
	}
}
