package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// IndexType names the published economic index cited as the basis for a rent
// increase. It labels the record; the percentage itself is supplied by the
// caller and the arithmetic never depends on the index.
type IndexType string

const (
	IndexIGPM   IndexType = "igpm"
	IndexIPCA   IndexType = "ipca"
	IndexINCC   IndexType = "incc"
	IndexCustom IndexType = "custom"
)

func (t IndexType) Valid() bool {
	switch t {
	case IndexIGPM, IndexIPCA, IndexINCC, IndexCustom:
		return true
	}
	return false
}

// RentAdjustment is the central entity: one computed rent increase for one
// lease, tracked through the approval lifecycle. Derived amounts are computed
// once at creation time and stored; they are never silently recomputed.
type RentAdjustment struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	TenantName      string `gorm:"type:varchar(200);not null" json:"tenant_name"`
	PropertyAddress string `gorm:"type:varchar(300);not null" json:"property_address"`

	IndexType            IndexType       `gorm:"type:varchar(10);not null;index" json:"index_type"`
	AdjustmentPercentage decimal.Decimal `gorm:"type:numeric(6,3);not null" json:"adjustment_percentage"`

	CurrentRent      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"current_rent"`
	IPTUValue        decimal.Decimal `gorm:"column:iptu_value;type:numeric(14,2);not null;default:0" json:"iptu_value"`
	CondominiumValue decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"condominium_value"`
	OtherCharges     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"other_charges"`

	ContractDate       time.Time  `gorm:"type:date;not null" json:"contract_date"`
	LastAdjustmentDate *time.Time `gorm:"type:date" json:"last_adjustment_date,omitempty"`

	NewRent             decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"new_rent"`
	IncreaseAmount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"increase_amount"`
	TotalMonthlyPayment decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total_monthly_payment"`
	EffectiveDate       time.Time       `gorm:"type:date;not null" json:"effective_date"`

	Status      AdjustmentStatus `gorm:"type:varchar(10);not null;default:'draft';index" json:"status"`
	IsGenerated bool             `gorm:"not null;default:false;index" json:"is_generated"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (RentAdjustment) TableName() string {
	return "rent_adjustments"
}
