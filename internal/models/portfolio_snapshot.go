package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PortfolioSnapshot is an hourly cron rollup across all trades. Snapshots
// are a history series; live numbers are always recomputed from executions.
type PortfolioSnapshot struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"`

	TotalTrades int `gorm:"not null;default:0"`
	OpenTrades  int `gorm:"not null;default:0"`

	RealizedPnL     decimal.Decimal `gorm:"column:realized_pnl;type:numeric(30,10);not null;default:0"`
	TotalCommission decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`

	// Breakdown holds per-category totals (stocks/options/combos).
	Breakdown datatypes.JSON `gorm:"type:jsonb"`

	TakenAt   time.Time `gorm:"type:timestamptz;not null;index"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (PortfolioSnapshot) TableName() string {
	return "portfolio_snapshots"
}
