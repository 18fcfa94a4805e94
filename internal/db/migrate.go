package db

import (
	"tradelog/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.Trade{},
		&models.Execution{},
		&models.StockSplit{},
		&models.PortfolioSnapshot{},
	)
}
