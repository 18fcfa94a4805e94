package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockSplit is a corporate action. AdjustmentFactor rescales quantity
// (ratio_from/ratio_to) and PriceFactor rescales price (ratio_to/ratio_from);
// their product is ~1. A split applies to a fill only when SplitDate is
// strictly after the fill's execution time.
type StockSplit struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement"`
	Symbol string `gorm:"type:varchar(20);not null;uniqueIndex:uq_splits_symbol_date"`

	SplitDate time.Time `gorm:"type:timestamptz;not null;uniqueIndex:uq_splits_symbol_date"`

	RatioFrom decimal.Decimal `gorm:"type:numeric(20,10);not null"`
	RatioTo   decimal.Decimal `gorm:"type:numeric(20,10);not null"`

	AdjustmentFactor decimal.Decimal `gorm:"type:numeric(20,10);not null"`
	PriceFactor      decimal.Decimal `gorm:"type:numeric(20,10);not null"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (StockSplit) TableName() string {
	return "stock_splits"
}
