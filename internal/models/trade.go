package models

import (
	"time"
)

// Trade lifecycle statuses.
const (
	TradeStatusOpen   = "open"
	TradeStatusClosed = "closed"
)

// Trade is the journal grouping row. Which executions belong to a trade is
// decided upstream (broker import assigns trade_id); reconciliation only
// consumes the grouping.
type Trade struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	Underlying string `gorm:"type:varchar(20);not null;index"`

	// StrategyName is a free-form label ("bull put spread", "short strangle");
	// the direction resolver uses it as its first-priority hint.
	StrategyName string `gorm:"type:varchar(50);index"`

	Status string  `gorm:"type:varchar(20);not null;default:'open';index"`
	Notes  *string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Trade) TableName() string {
	return "trades"
}
