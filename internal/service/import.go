package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tradelog/internal/models"
	"tradelog/internal/repository"
)

// ExecutionImportRow is one fill as delivered by a broker export. Numeric
// fields arrive as strings; parsing is defensive because broker CSVs are not.
type ExecutionImportRow struct {
	TradeID      *uint64 `json:"trade_id,omitempty"`
	Underlying   string  `json:"underlying" binding:"required"`
	SecurityType string  `json:"security_type" binding:"required"`
	Side         string  `json:"side" binding:"required"`
	OpenClose    string  `json:"open_close,omitempty"`

	Quantity   string `json:"quantity" binding:"required"`
	Price      string `json:"price" binding:"required"`
	Commission string `json:"commission,omitempty"`
	NetAmount  string `json:"net_amount,omitempty"`

	Strike     string `json:"strike,omitempty"`
	OptionType string `json:"option_type,omitempty"`
	Expiration string `json:"expiration,omitempty"`
	Multiplier int64  `json:"multiplier,omitempty"`

	ExecutedAt string `json:"executed_at" binding:"required"`
}

// ImportWarning records a field that could not be parsed and the value the
// import fell back to. The row still imports; the warning is the audit trail.
type ImportWarning struct {
	Row    int    `json:"row"`
	Field  string `json:"field"`
	Value  string `json:"value"`
	Detail string `json:"detail"`
}

type ImportResult struct {
	Inserted int             `json:"inserted"`
	Skipped  int             `json:"skipped"`
	Warnings []ImportWarning `json:"warnings,omitempty"`
}

// SplitInput describes a corporate action as "from:to" shares. A 4-for-1
// forward split is RatioFrom=4 RatioTo=1.
type SplitInput struct {
	Symbol    string `json:"symbol" binding:"required"`
	SplitDate string `json:"split_date" binding:"required"`
	RatioFrom string `json:"ratio_from" binding:"required"`
	RatioTo   string `json:"ratio_to" binding:"required"`
}

type ImportService struct {
	Repo     repository.Repository
	Logger   *zap.Logger
	MaxBatch int
}

// ImportExecutions validates, normalizes and inserts a batch of broker fills
// in one transaction. Rows missing a usable timestamp or with a zero quantity
// are skipped; malformed money fields degrade to zero with a warning instead
// of rejecting the batch.
func (s *ImportService) ImportExecutions(ctx context.Context, rows []ExecutionImportRow) (ImportResult, error) {
	result := ImportResult{}
	if s == nil || s.Repo == nil || len(rows) == 0 {
		return result, nil
	}
	maxBatch := s.MaxBatch
	if maxBatch <= 0 {
		maxBatch = 1000
	}
	if len(rows) > maxBatch {
		return result, fmt.Errorf("batch of %d exceeds the %d row limit", len(rows), maxBatch)
	}

	items := make([]models.Execution, 0, len(rows))
	for i, row := range rows {
		item, skip := s.buildExecution(i, row, &result)
		if skip {
			result.Skipped++
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return result, nil
	}

	err := s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		return s.Repo.InsertExecutionsTx(ctx, tx, items)
	})
	if err != nil {
		return result, err
	}
	result.Inserted = len(items)
	if s.Logger != nil {
		s.Logger.Info("executions imported",
			zap.Int("inserted", result.Inserted),
			zap.Int("skipped", result.Skipped),
			zap.Int("warnings", len(result.Warnings)))
	}
	return result, nil
}

func (s *ImportService) buildExecution(row int, in ExecutionImportRow, result *ImportResult) (models.Execution, bool) {
	executedAt, err := parseImportTime(in.ExecutedAt)
	if err != nil {
		result.Warnings = append(result.Warnings, ImportWarning{
			Row: row, Field: "executed_at", Value: in.ExecutedAt,
			Detail: "unparseable timestamp, row skipped",
		})
		return models.Execution{}, true
	}

	item := models.Execution{
		TradeID:      in.TradeID,
		Underlying:   strings.ToUpper(strings.TrimSpace(in.Underlying)),
		SecurityType: normalizeSecurityType(in.SecurityType),
		Side:         strings.ToUpper(strings.TrimSpace(in.Side)),
		ExecutedAt:   executedAt,
	}
	if item.Underlying == "" {
		result.Warnings = append(result.Warnings, ImportWarning{
			Row: row, Field: "underlying", Value: in.Underlying,
			Detail: "empty underlying, row skipped",
		})
		return models.Execution{}, true
	}
	if item.Side != models.SideBuy && item.Side != models.SideSell {
		result.Warnings = append(result.Warnings, ImportWarning{
			Row: row, Field: "side", Value: in.Side,
			Detail: "side must be BUY or SELL, row skipped",
		})
		return models.Execution{}, true
	}

	item.Quantity = s.parseMoney(row, "quantity", in.Quantity, result)
	if item.Quantity.Sign() <= 0 {
		result.Warnings = append(result.Warnings, ImportWarning{
			Row: row, Field: "quantity", Value: in.Quantity,
			Detail: "non-positive quantity, row skipped",
		})
		return models.Execution{}, true
	}
	item.Price = s.parseMoney(row, "price", in.Price, result)
	item.Commission = s.parseMoney(row, "commission", in.Commission, result)
	item.NetAmount = s.parseMoney(row, "net_amount", in.NetAmount, result)
	if item.NetAmount.IsZero() {
		item.NetAmount = item.Quantity.Mul(item.Price)
	}

	if indicator := strings.ToUpper(strings.TrimSpace(in.OpenClose)); indicator == models.IndicatorOpen || indicator == models.IndicatorClose {
		item.OpenClose = &indicator
	}

	if item.SecurityType == models.SecurityOption {
		if strike := s.parseMoney(row, "strike", in.Strike, result); strike.Sign() > 0 {
			item.Strike = &strike
		}
		if optType := strings.ToUpper(strings.TrimSpace(in.OptionType)); optType == "C" || optType == "P" {
			item.OptionType = &optType
		}
		if in.Expiration != "" {
			if expiration, err := parseImportTime(in.Expiration); err == nil {
				item.Expiration = &expiration
			} else {
				result.Warnings = append(result.Warnings, ImportWarning{
					Row: row, Field: "expiration", Value: in.Expiration,
					Detail: "unparseable expiration, left empty",
				})
			}
		}
		item.Multiplier = in.Multiplier
		if item.Multiplier <= 0 {
			item.Multiplier = 100
		}
	} else {
		item.Multiplier = 1
	}
	return item, false
}

// parseMoney never fails: a malformed value becomes zero and a warning.
func (s *ImportService) parseMoney(row int, field, raw string, result *ImportResult) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		result.Warnings = append(result.Warnings, ImportWarning{
			Row: row, Field: field, Value: raw,
			Detail: "unparseable decimal, defaulted to 0",
		})
		return decimal.Zero
	}
	return value
}

// UpsertSplit validates the ratio and stores the split with both derived
// factors precomputed.
func (s *ImportService) UpsertSplit(ctx context.Context, in SplitInput) (*models.StockSplit, error) {
	if s == nil || s.Repo == nil {
		return nil, nil
	}
	splitDate, err := parseImportTime(in.SplitDate)
	if err != nil {
		return nil, fmt.Errorf("split_date: %w", err)
	}
	from, err := decimal.NewFromString(strings.TrimSpace(in.RatioFrom))
	if err != nil {
		return nil, fmt.Errorf("ratio_from: %w", err)
	}
	to, err := decimal.NewFromString(strings.TrimSpace(in.RatioTo))
	if err != nil {
		return nil, fmt.Errorf("ratio_to: %w", err)
	}
	if from.Sign() <= 0 || to.Sign() <= 0 {
		return nil, fmt.Errorf("split ratio must be positive, got %s:%s", from, to)
	}

	item := &models.StockSplit{
		Symbol:           strings.ToUpper(strings.TrimSpace(in.Symbol)),
		SplitDate:        splitDate,
		RatioFrom:        from,
		RatioTo:          to,
		AdjustmentFactor: from.Div(to),
		PriceFactor:      to.Div(from),
	}
	if err := s.Repo.UpsertStockSplit(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func normalizeSecurityType(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case models.SecurityOption, "OPTION":
		return models.SecurityOption
	default:
		return models.SecurityStock
	}
}

var importTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseImportTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range importTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", raw)
}
