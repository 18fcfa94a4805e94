package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"tradelog/internal/models"
	"tradelog/internal/repository"
)

// SnapshotService persists the hourly portfolio rollup. Live reads never use
// snapshots; they exist only as the history series behind /analytics/history.
type SnapshotService struct {
	Repo      repository.Repository
	Reconcile *ReconcileService
	Logger    *zap.Logger
}

func (s *SnapshotService) RunOnce(ctx context.Context) error {
	if s == nil || s.Repo == nil || s.Reconcile == nil {
		return nil
	}
	overview, err := s.Reconcile.ReconcileAll(ctx)
	if err != nil {
		return err
	}

	breakdown, err := json.Marshal(overview.ByCategory)
	if err != nil {
		return err
	}
	item := &models.PortfolioSnapshot{
		TotalTrades:     overview.TotalTrades,
		OpenTrades:      overview.OpenTrades,
		RealizedPnL:     overview.RealizedPnL,
		TotalCommission: overview.TotalCommission,
		Breakdown:       breakdown,
		TakenAt:         time.Now().UTC(),
	}
	if err := s.Repo.InsertPortfolioSnapshot(ctx, item); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Info("portfolio snapshot taken",
			zap.Int("total_trades", overview.TotalTrades),
			zap.Int("open_trades", overview.OpenTrades),
			zap.String("realized_pnl", overview.RealizedPnL.String()))
	}
	return nil
}
