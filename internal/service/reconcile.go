package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradelog/internal/models"
	"tradelog/internal/recon"
	"tradelog/internal/repository"
)

// ReconcileService recomputes trade state from stored executions. Results are
// memoized by input fingerprint, so repeated reads of an unchanged trade skip
// the pipeline entirely.
type ReconcileService struct {
	Repo   repository.Repository
	Logger *zap.Logger
	Cache  *recon.Cache
}

// CategoryTotals is one bucket of the portfolio breakdown.
type CategoryTotals struct {
	Trades      int             `json:"trades"`
	OpenTrades  int             `json:"open_trades"`
	RealizedPnL decimal.Decimal `json:"realized_pnl"`
	Commission  decimal.Decimal `json:"commission"`
}

// PortfolioOverview is the cross-trade rollup served by analytics and
// captured by the snapshot cron.
type PortfolioOverview struct {
	TotalTrades     int                                `json:"total_trades"`
	OpenTrades      int                                `json:"open_trades"`
	RealizedPnL     decimal.Decimal                    `json:"realized_pnl"`
	TotalCommission decimal.Decimal                    `json:"total_commission"`
	ByCategory      map[recon.Category]*CategoryTotals `json:"by_category"`
	WarningCount    int                                `json:"warning_count"`
	FailedTrades    []uint64                           `json:"failed_trades,omitempty"`
	ComputedAt      time.Time                          `json:"computed_at"`
}

// ReconcileTrade recomputes (or serves from cache) the full reconciliation
// result for one trade and syncs the trade's stored status with the outcome.
func (s *ReconcileService) ReconcileTrade(ctx context.Context, tradeID uint64) (*recon.Result, error) {
	if s == nil || s.Repo == nil {
		return nil, nil
	}
	trade, err := s.Repo.GetTradeByID(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	if trade == nil {
		return nil, fmt.Errorf("trade %d not found", tradeID)
	}

	executions, err := s.Repo.ListExecutionsByTradeID(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	splits, err := s.loadSplits(ctx, executions)
	if err != nil {
		return nil, err
	}

	fingerprint := recon.Fingerprint(executions, splits)
	if s.Cache != nil {
		if cached, ok := s.Cache.Get(fingerprint); ok {
			return &cached, nil
		}
	}

	result := recon.Reconcile(executions, splits, recon.Options{
		TradeID:      tradeID,
		StrategyName: trade.StrategyName,
	})
	if s.Cache != nil {
		s.Cache.Put(fingerprint, result)
	}

	if err := s.syncTradeStatus(ctx, trade, result.Summary); err != nil && s.Logger != nil {
		s.Logger.Warn("trade status sync failed",
			zap.Uint64("trade_id", tradeID),
			zap.Error(err))
	}
	return &result, nil
}

// ReconcileAll walks every trade and aggregates the portfolio view. A trade
// that fails to reconcile is recorded and skipped; one bad trade never sinks
// the overview.
func (s *ReconcileService) ReconcileAll(ctx context.Context) (PortfolioOverview, error) {
	overview := PortfolioOverview{
		RealizedPnL:     decimal.Zero,
		TotalCommission: decimal.Zero,
		ByCategory:      map[recon.Category]*CategoryTotals{},
		ComputedAt:      time.Now().UTC(),
	}
	if s == nil || s.Repo == nil {
		return overview, nil
	}
	ids, err := s.Repo.ListTradeIDs(ctx, nil)
	if err != nil {
		return overview, err
	}

	for _, id := range ids {
		result, err := s.ReconcileTrade(ctx, id)
		if err != nil {
			overview.FailedTrades = append(overview.FailedTrades, id)
			if s.Logger != nil {
				s.Logger.Warn("trade reconciliation failed",
					zap.Uint64("trade_id", id),
					zap.Error(err))
			}
			continue
		}

		summary := result.Summary
		overview.TotalTrades++
		if summary.IsOpen {
			overview.OpenTrades++
		}
		overview.RealizedPnL = overview.RealizedPnL.Add(summary.RealizedPnL)
		overview.TotalCommission = overview.TotalCommission.Add(summary.TotalCommission)
		overview.WarningCount += len(result.Warnings)

		bucket := overview.ByCategory[summary.Category]
		if bucket == nil {
			bucket = &CategoryTotals{
				RealizedPnL: decimal.Zero,
				Commission:  decimal.Zero,
			}
			overview.ByCategory[summary.Category] = bucket
		}
		bucket.Trades++
		if summary.IsOpen {
			bucket.OpenTrades++
		}
		bucket.RealizedPnL = bucket.RealizedPnL.Add(summary.RealizedPnL)
		bucket.Commission = bucket.Commission.Add(summary.TotalCommission)
	}
	return overview, nil
}

// loadSplits fetches split rows for the stock symbols present in the fills.
// Option fills never split-adjust, so their underlyings are skipped.
func (s *ReconcileService) loadSplits(ctx context.Context, executions []models.Execution) (map[string][]models.StockSplit, error) {
	symbols := make([]string, 0, 2)
	seen := map[string]struct{}{}
	for _, e := range executions {
		if e.SecurityType != models.SecurityStock {
			continue
		}
		if _, ok := seen[e.Underlying]; ok {
			continue
		}
		seen[e.Underlying] = struct{}{}
		symbols = append(symbols, e.Underlying)
	}
	if len(symbols) == 0 {
		return nil, nil
	}
	return s.Repo.ListStockSplitsBySymbols(ctx, symbols)
}

func (s *ReconcileService) syncTradeStatus(ctx context.Context, trade *models.Trade, summary recon.TradeSummary) error {
	want := models.TradeStatusClosed
	if summary.IsOpen || summary.FillCount == 0 {
		want = models.TradeStatusOpen
	}
	if trade.Status == want {
		return nil
	}
	return s.Repo.UpdateTradeStatus(ctx, trade.ID, want)
}
