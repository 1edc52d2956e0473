package db

import (
	"aliquotas/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.RentAdjustment{},
		&models.AdjustmentHistory{},
		&models.CalculationSettings{},
		&models.PDFTemplate{},
	)
}
