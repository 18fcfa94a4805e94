package recon

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade categories.
type Category string

const (
	CategoryStocks  Category = "stocks"
	CategoryOptions Category = "options"
	CategoryCombos  Category = "combos"
)

// Trade directions.
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

// Canonical action labels derived from side x open/close.
const (
	ActionBTO = "BTO"
	ActionBTC = "BTC"
	ActionSTO = "STO"
	ActionSTC = "STC"
)

// Warning codes surfaced by reconciliation.
const (
	WarnNoOpeningFills   = "no_opening_fills"
	WarnCloseExceedsOpen = "close_exceeds_open"
)

// Warning is a non-fatal reconciliation discrepancy. Warnings never abort a
// trade; they travel with the Result so callers can render or log them.
type Warning struct {
	Code   string   `json:"code"`
	Key    GroupKey `json:"key"`
	Detail string   `json:"detail,omitempty"`
}

// MatchedLegPair is one open/close relationship within a contract group.
// NetPnL is nil exactly while the leg is fully open (no closing quantity).
type MatchedLegPair struct {
	Key        GroupKey         `json:"key"`
	Strike     *decimal.Decimal `json:"strike,omitempty"`
	OptionType string           `json:"option_type,omitempty"`
	Expiration *time.Time       `json:"expiration,omitempty"`

	OpeningQty   decimal.Decimal `json:"opening_qty"`
	OpeningPrice decimal.Decimal `json:"opening_price"`
	ClosingQty   decimal.Decimal `json:"closing_qty"`
	ClosingPrice decimal.Decimal `json:"closing_price"`
	MatchedQty   decimal.Decimal `json:"matched_qty"`

	// Quantity is the display size: max(opening, closing).
	Quantity decimal.Decimal `json:"quantity"`

	Long       bool            `json:"long"`
	Multiplier decimal.Decimal `json:"multiplier"`

	OpenCommission  decimal.Decimal `json:"open_commission"`
	CloseCommission decimal.Decimal `json:"close_commission"`

	NetPnL *decimal.Decimal `json:"net_pnl,omitempty"`
	IsOpen bool             `json:"is_open"`

	OpenedAt *time.Time `json:"opened_at,omitempty"`
	ClosedAt *time.Time `json:"closed_at,omitempty"`
}

// AggregatedLegRow is the display rollup of fills sharing
// (strike, option type, expiration, action).
type AggregatedLegRow struct {
	Key        GroupKey         `json:"key"`
	Strike     *decimal.Decimal `json:"strike,omitempty"`
	OptionType string           `json:"option_type,omitempty"`
	Expiration *time.Time       `json:"expiration,omitempty"`

	Action   string          `json:"action"`
	Quantity decimal.Decimal `json:"quantity"`
	AvgPrice decimal.Decimal `json:"avg_price"`

	// TotalValue is signed: positive for buys (debits), negative for sells
	// (credits), multiplier included.
	TotalValue decimal.Decimal `json:"total_value"`
	Commission decimal.Decimal `json:"commission"`
	FillCount  int             `json:"fill_count"`
}

// TradeSummary is the whole-trade rollup every consumer renders. It is
// derived from pairs and rows only, never from raw fills.
type TradeSummary struct {
	TradeID    uint64    `json:"trade_id"`
	Underlying string    `json:"underlying"`
	Category   Category  `json:"category"`
	Direction  Direction `json:"direction"`

	Strikes    string     `json:"strikes,omitempty"`
	Expiration *time.Time `json:"expiration,omitempty"`
	DTE        *int       `json:"dte,omitempty"`

	Quantity     decimal.Decimal `json:"quantity"`
	AvgOpenPrice decimal.Decimal `json:"avg_open_price"`
	NetValue     decimal.Decimal `json:"net_value"`
	CostBasis    decimal.Decimal `json:"cost_basis"`

	TotalCommission decimal.Decimal `json:"total_commission"`
	RealizedPnL     decimal.Decimal `json:"realized_pnl"`

	// UnrealizedPnL needs mark prices, which are outside this engine's
	// inputs; it stays nil until a quote layer fills it in.
	UnrealizedPnL *decimal.Decimal `json:"unrealized_pnl,omitempty"`

	IsOpen    bool `json:"is_open"`
	FillCount int  `json:"fill_count"`
}

// Result is the full output of reconciling one trade.
type Result struct {
	TradeID  uint64             `json:"trade_id"`
	Pairs    []MatchedLegPair   `json:"pairs"`
	Rows     []AggregatedLegRow `json:"rows"`
	Summary  TradeSummary       `json:"summary"`
	Warnings []Warning          `json:"warnings,omitempty"`
}

// Options carries per-trade context the fills themselves do not know.
type Options struct {
	TradeID      uint64
	StrategyName string

	// Now anchors the DTE calculation; zero means time.Now().UTC().
	Now time.Time
}
