package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tradelog/internal/models"
)

// Repository is the persistence surface for the reconciliation service and
// the HTTP handlers. All listing methods paginate via params structs.
type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Trades
	InsertTrade(ctx context.Context, item *models.Trade) error
	GetTradeByID(ctx context.Context, id uint64) (*models.Trade, error)
	ListTrades(ctx context.Context, params ListTradesParams) ([]models.Trade, error)
	CountTrades(ctx context.Context, params ListTradesParams) (int64, error)
	ListTradeIDs(ctx context.Context, status *string) ([]uint64, error)
	UpdateTradeStatus(ctx context.Context, id uint64, status string) error
	UpdateTradeNotes(ctx context.Context, id uint64, notes string) error

	// Executions
	InsertExecutionsTx(ctx context.Context, tx *gorm.DB, items []models.Execution) error
	ListExecutionsByTradeID(ctx context.Context, tradeID uint64) ([]models.Execution, error)
	ListExecutions(ctx context.Context, params ListExecutionsParams) ([]models.Execution, error)
	CountExecutions(ctx context.Context, params ListExecutionsParams) (int64, error)
	AssignExecutionsToTrade(ctx context.Context, ids []uint64, tradeID uint64) (int64, error)

	// Stock splits
	UpsertStockSplit(ctx context.Context, item *models.StockSplit) error
	ListStockSplitsBySymbols(ctx context.Context, symbols []string) (map[string][]models.StockSplit, error)
	ListStockSplits(ctx context.Context, params ListStockSplitsParams) ([]models.StockSplit, error)
	CountStockSplits(ctx context.Context, params ListStockSplitsParams) (int64, error)
	DeleteStockSplit(ctx context.Context, id uint64) error

	// Portfolio snapshots
	InsertPortfolioSnapshot(ctx context.Context, item *models.PortfolioSnapshot) error
	ListPortfolioSnapshots(ctx context.Context, params ListPortfolioSnapshotsParams) ([]models.PortfolioSnapshot, error)
}

type ListTradesParams struct {
	Limit        int
	Offset       int
	Underlying   *string
	Status       *string
	StrategyName *string
	Since        *time.Time
	Until        *time.Time
	OrderBy      string
	Asc          *bool
}

type ListExecutionsParams struct {
	Limit        int
	Offset       int
	TradeID      *uint64
	Underlying   *string
	SecurityType *string
	Side         *string
	Since        *time.Time
	Until        *time.Time
	OrderBy      string
	Asc          *bool
}

type ListStockSplitsParams struct {
	Limit   int
	Offset  int
	Symbol  *string
	Since   *time.Time
	OrderBy string
	Asc     *bool
}

type ListPortfolioSnapshotsParams struct {
	Limit  int
	Offset int
	Since  *time.Time
	Until  *time.Time
}
