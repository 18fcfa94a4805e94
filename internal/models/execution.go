package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Security types.
const (
	SecurityStock  = "STK"
	SecurityOption = "OPT"
)

// Fill sides.
const (
	SideBuy  = "BUY"
	SideSell = "SELL"
)

// Open/close indicator values (optional on a fill).
const (
	IndicatorOpen  = "O"
	IndicatorClose = "C"
)

// Execution is one atomic broker fill. Quantity and price are always
// non-negative; direction is carried by Side, never by a negative quantity.
type Execution struct {
	ID      uint64  `gorm:"primaryKey;autoIncrement"`
	TradeID *uint64 `gorm:"index"`

	Underlying   string `gorm:"type:varchar(20);not null;index"`
	SecurityType string `gorm:"type:varchar(10);not null"`
	Side         string `gorm:"type:varchar(10);not null"`

	// OpenClose is the broker-supplied O/C indicator when available.
	// When absent the classifier infers it from a running position.
	OpenClose *string `gorm:"type:varchar(1)"`

	Quantity   decimal.Decimal `gorm:"type:numeric(30,10);not null"`
	Price      decimal.Decimal `gorm:"type:numeric(20,10);not null"`
	Commission decimal.Decimal `gorm:"type:numeric(20,10);not null;default:0"`
	NetAmount  decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`

	Strike     *decimal.Decimal `gorm:"type:numeric(20,10)"`
	OptionType *string          `gorm:"type:varchar(1)"`
	Expiration *time.Time       `gorm:"type:timestamptz"`

	// Multiplier is the contract size scalar: 100 for standard equity
	// options, 1 for stock.
	Multiplier int64 `gorm:"not null;default:1"`

	ExecutedAt time.Time `gorm:"type:timestamptz;not null;index"`
	CreatedAt  time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (Execution) TableName() string {
	return "executions"
}
