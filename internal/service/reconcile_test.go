package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tradelog/internal/models"
	"tradelog/internal/recon"
	"tradelog/internal/repository"
)

// fakeRepo stubs just the methods ReconcileAll touches; everything else
// panics via the embedded nil interface if accidentally called.
type fakeRepo struct {
	repository.Repository

	trades     map[uint64]*models.Trade
	executions map[uint64][]models.Execution
	failID     uint64

	statusUpdates map[uint64]string
}

func (f *fakeRepo) ListTradeIDs(ctx context.Context, status *string) ([]uint64, error) {
	ids := make([]uint64, 0, len(f.trades))
	for id := uint64(1); id <= uint64(len(f.trades))+1; id++ {
		if _, ok := f.trades[id]; ok || id == f.failID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeRepo) GetTradeByID(ctx context.Context, id uint64) (*models.Trade, error) {
	if id == f.failID {
		return nil, errors.New("storage offline")
	}
	return f.trades[id], nil
}

func (f *fakeRepo) ListExecutionsByTradeID(ctx context.Context, tradeID uint64) ([]models.Execution, error) {
	return f.executions[tradeID], nil
}

func (f *fakeRepo) ListStockSplitsBySymbols(ctx context.Context, symbols []string) (map[string][]models.StockSplit, error) {
	return nil, nil
}

func (f *fakeRepo) UpdateTradeStatus(ctx context.Context, id uint64, status string) error {
	if f.statusUpdates == nil {
		f.statusUpdates = map[uint64]string{}
	}
	f.statusUpdates[id] = status
	return nil
}

func roundTrip(tradeID uint64, base uint64) []models.Execution {
	at := time.Date(2026, 8, 3, 14, 30, 0, 0, time.UTC)
	return []models.Execution{
		{
			ID: base, TradeID: &tradeID, Underlying: "AAPL",
			SecurityType: models.SecurityStock, Side: models.SideBuy,
			Quantity: decimal.NewFromInt(100), Price: decimal.NewFromInt(50),
			Multiplier: 1, ExecutedAt: at,
		},
		{
			ID: base + 1, TradeID: &tradeID, Underlying: "AAPL",
			SecurityType: models.SecurityStock, Side: models.SideSell,
			Quantity: decimal.NewFromInt(100), Price: decimal.NewFromInt(55),
			Multiplier: 1, ExecutedAt: at.Add(time.Hour),
		},
	}
}

// One trade's storage failure must not keep the rest of the portfolio from
// aggregating; the bad id is reported instead.
func TestReconcileAll_BatchIsolation(t *testing.T) {
	repo := &fakeRepo{
		trades: map[uint64]*models.Trade{
			1: {ID: 1, Underlying: "AAPL", Status: models.TradeStatusOpen},
			3: {ID: 3, Underlying: "AAPL", Status: models.TradeStatusOpen},
		},
		executions: map[uint64][]models.Execution{
			1: roundTrip(1, 10),
			3: roundTrip(3, 30),
		},
		failID: 2,
	}
	svc := &ReconcileService{Repo: repo, Cache: recon.NewCache(8)}

	overview, err := svc.ReconcileAll(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if overview.TotalTrades != 2 {
		t.Fatalf("total trades=%d want=2", overview.TotalTrades)
	}
	if len(overview.FailedTrades) != 1 || overview.FailedTrades[0] != 2 {
		t.Fatalf("failed trades=%v want=[2]", overview.FailedTrades)
	}
	// Two closed 100-share round trips at +$500 each.
	if overview.RealizedPnL.Cmp(decimal.NewFromInt(1000)) != 0 {
		t.Fatalf("realized pnl=%s want=1000", overview.RealizedPnL.String())
	}
	if overview.OpenTrades != 0 {
		t.Fatalf("open trades=%d want=0", overview.OpenTrades)
	}
	bucket := overview.ByCategory[recon.CategoryStocks]
	if bucket == nil || bucket.Trades != 2 {
		t.Fatalf("stocks bucket=%+v want 2 trades", bucket)
	}
	if repo.statusUpdates[1] != models.TradeStatusClosed || repo.statusUpdates[3] != models.TradeStatusClosed {
		t.Fatalf("closed round trips must sync status, got %v", repo.statusUpdates)
	}
}
