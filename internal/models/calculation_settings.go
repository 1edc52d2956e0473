package models

import "time"

// CalculationSettings holds organization-wide defaults for the adjustment
// engine. Exactly one row is flagged is_default at any time; the repository
// enforces that when a new default is set. The engine reads the active row at
// the start of each operation and receives it as an explicit parameter.
type CalculationSettings struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Name                  string `gorm:"type:varchar(120);not null;uniqueIndex" json:"name"`
	MinimumIntervalMonths int    `gorm:"not null;default:12" json:"minimum_interval_months"`
	RoundingPlaces        int32  `gorm:"not null;default:2" json:"rounding_places"`

	IsDefault bool `gorm:"not null;default:false;index" json:"is_default"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (CalculationSettings) TableName() string {
	return "calculation_settings"
}
