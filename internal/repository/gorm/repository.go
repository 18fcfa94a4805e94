package gormrepository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tradelog/internal/models"
	"tradelog/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- Trades -----------------------------------------------------------------

func (s *Store) InsertTrade(ctx context.Context, item *models.Trade) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetTradeByID(ctx context.Context, id uint64) (*models.Trade, error) {
	if s == nil || s.db == nil || id == 0 {
		return nil, nil
	}
	var item models.Trade
	err := s.db.WithContext(ctx).Model(&models.Trade{}).Where("id = ?", id).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) listTradesQuery(ctx context.Context, params repository.ListTradesParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Trade{})
	if params.Underlying != nil && strings.TrimSpace(*params.Underlying) != "" {
		query = query.Where("underlying = ?", strings.ToUpper(strings.TrimSpace(*params.Underlying)))
	}
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(*params.Status))
	}
	if params.StrategyName != nil && strings.TrimSpace(*params.StrategyName) != "" {
		query = query.Where("strategy_name = ?", strings.TrimSpace(*params.StrategyName))
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("created_at >= ?", *params.Since)
	}
	if params.Until != nil && !params.Until.IsZero() {
		query = query.Where("created_at <= ?", *params.Until)
	}
	return query
}

func (s *Store) ListTrades(ctx context.Context, params repository.ListTradesParams) ([]models.Trade, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyOrder(s.listTradesQuery(ctx, params), params.OrderBy, params.Asc, "created_at")
	limit := normalizeLimit(params.Limit, 50)
	offset := normalizeOffset(params.Offset)
	var items []models.Trade
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountTrades(ctx context.Context, params repository.ListTradesParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := s.listTradesQuery(ctx, params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) ListTradeIDs(ctx context.Context, status *string) ([]uint64, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Trade{})
	if status != nil && strings.TrimSpace(*status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(*status))
	}
	var ids []uint64
	if err := query.Order("id asc").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *Store) UpdateTradeStatus(ctx context.Context, id uint64, status string) error {
	if s == nil || s.db == nil || id == 0 {
		return nil
	}
	status = strings.TrimSpace(status)
	if status == "" {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Trade{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()}).
		Error
}

func (s *Store) UpdateTradeNotes(ctx context.Context, id uint64, notes string) error {
	if s == nil || s.db == nil || id == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Trade{}).
		Where("id = ?", id).
		Updates(map[string]any{"notes": notes, "updated_at": time.Now().UTC()}).
		Error
}

// --- Executions -------------------------------------------------------------

func (s *Store) InsertExecutionsTx(ctx context.Context, tx *gorm.DB, items []models.Execution) error {
	if s == nil || s.db == nil || len(items) == 0 {
		return nil
	}
	db := tx
	if db == nil {
		db = s.db.WithContext(ctx)
	}
	return createInBatches(db, items, 200)
}

func (s *Store) ListExecutionsByTradeID(ctx context.Context, tradeID uint64) ([]models.Execution, error) {
	if s == nil || s.db == nil || tradeID == 0 {
		return nil, nil
	}
	var items []models.Execution
	if err := s.db.WithContext(ctx).
		Model(&models.Execution{}).
		Where("trade_id = ?", tradeID).
		Order("executed_at asc, id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) listExecutionsQuery(ctx context.Context, params repository.ListExecutionsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Execution{})
	if params.TradeID != nil && *params.TradeID > 0 {
		query = query.Where("trade_id = ?", *params.TradeID)
	}
	if params.Underlying != nil && strings.TrimSpace(*params.Underlying) != "" {
		query = query.Where("underlying = ?", strings.ToUpper(strings.TrimSpace(*params.Underlying)))
	}
	if params.SecurityType != nil && strings.TrimSpace(*params.SecurityType) != "" {
		query = query.Where("security_type = ?", strings.ToUpper(strings.TrimSpace(*params.SecurityType)))
	}
	if params.Side != nil && strings.TrimSpace(*params.Side) != "" {
		query = query.Where("side = ?", strings.ToUpper(strings.TrimSpace(*params.Side)))
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("executed_at >= ?", *params.Since)
	}
	if params.Until != nil && !params.Until.IsZero() {
		query = query.Where("executed_at <= ?", *params.Until)
	}
	return query
}

func (s *Store) ListExecutions(ctx context.Context, params repository.ListExecutionsParams) ([]models.Execution, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyOrder(s.listExecutionsQuery(ctx, params), params.OrderBy, params.Asc, "executed_at")
	limit := normalizeLimit(params.Limit, 100)
	offset := normalizeOffset(params.Offset)
	var items []models.Execution
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountExecutions(ctx context.Context, params repository.ListExecutionsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := s.listExecutionsQuery(ctx, params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) AssignExecutionsToTrade(ctx context.Context, ids []uint64, tradeID uint64) (int64, error) {
	if s == nil || s.db == nil || len(ids) == 0 || tradeID == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Model(&models.Execution{}).
		Where("id IN ?", ids).
		Update("trade_id", tradeID)
	return res.RowsAffected, res.Error
}

// --- Stock splits -----------------------------------------------------------

func (s *Store) UpsertStockSplit(ctx context.Context, item *models.StockSplit) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.Symbol) == "" || item.SplitDate.IsZero() {
		return nil
	}
	item.Symbol = strings.ToUpper(strings.TrimSpace(item.Symbol))
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "symbol"}, {Name: "split_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"ratio_from",
			"ratio_to",
			"adjustment_factor",
			"price_factor",
		}),
	}).Create(item).Error
}

func (s *Store) ListStockSplitsBySymbols(ctx context.Context, symbols []string) (map[string][]models.StockSplit, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	symbols = cleanSymbols(symbols)
	if len(symbols) == 0 {
		return map[string][]models.StockSplit{}, nil
	}
	var items []models.StockSplit
	if err := s.db.WithContext(ctx).
		Model(&models.StockSplit{}).
		Where("symbol IN ?", symbols).
		Order("symbol asc, split_date asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	out := make(map[string][]models.StockSplit, len(symbols))
	for _, item := range items {
		out[item.Symbol] = append(out[item.Symbol], item)
	}
	return out, nil
}

func (s *Store) listStockSplitsQuery(ctx context.Context, params repository.ListStockSplitsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.StockSplit{})
	if params.Symbol != nil && strings.TrimSpace(*params.Symbol) != "" {
		query = query.Where("symbol = ?", strings.ToUpper(strings.TrimSpace(*params.Symbol)))
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("split_date >= ?", *params.Since)
	}
	return query
}

func (s *Store) ListStockSplits(ctx context.Context, params repository.ListStockSplitsParams) ([]models.StockSplit, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyOrder(s.listStockSplitsQuery(ctx, params), params.OrderBy, params.Asc, "split_date")
	limit := normalizeLimit(params.Limit, 100)
	offset := normalizeOffset(params.Offset)
	var items []models.StockSplit
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountStockSplits(ctx context.Context, params repository.ListStockSplitsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := s.listStockSplitsQuery(ctx, params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) DeleteStockSplit(ctx context.Context, id uint64) error {
	if s == nil || s.db == nil || id == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.StockSplit{}).Error
}

// --- Portfolio snapshots ----------------------------------------------------

func (s *Store) InsertPortfolioSnapshot(ctx context.Context, item *models.PortfolioSnapshot) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if item.TakenAt.IsZero() {
		item.TakenAt = time.Now().UTC()
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListPortfolioSnapshots(ctx context.Context, params repository.ListPortfolioSnapshotsParams) ([]models.PortfolioSnapshot, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.PortfolioSnapshot{})
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("taken_at >= ?", *params.Since)
	}
	if params.Until != nil && !params.Until.IsZero() {
		query = query.Where("taken_at <= ?", *params.Until)
	}
	limit := normalizeLimit(params.Limit, 168)
	offset := normalizeOffset(params.Offset)
	var items []models.PortfolioSnapshot
	if err := query.Order("taken_at desc").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- helpers ----------------------------------------------------------------

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	if column == "" {
		column = fallback
	}
	direction := "desc"
	if asc != nil && *asc {
		direction = "asc"
	}
	return query.Order(column + " " + direction)
}

func createInBatches[T any](db *gorm.DB, items []T, batchSize int) error {
	if len(items) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 200
	}
	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		if err := db.CreateInBatches(items[i:end], batchSize).Error; err != nil {
			return err
		}
	}
	return nil
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

func cleanSymbols(items []string) []string {
	out := make([]string, 0, len(items))
	seen := map[string]struct{}{}
	for _, raw := range items {
		val := strings.ToUpper(strings.TrimSpace(raw))
		if val == "" {
			continue
		}
		if _, ok := seen[val]; ok {
			continue
		}
		seen[val] = struct{}{}
		out = append(out, val)
	}
	return out
}
