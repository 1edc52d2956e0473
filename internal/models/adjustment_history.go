package models

import (
	"time"

	"gorm.io/datatypes"
)

// AdjustmentHistory is the append-only audit trail of status transitions.
// Rows are written in the same transaction as the state change and never
// mutated afterwards.
type AdjustmentHistory struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	AdjustmentID string           `gorm:"type:uuid;not null;index" json:"adjustment_id"`
	FromStatus   AdjustmentStatus `gorm:"type:varchar(10);not null" json:"from_status"`
	ToStatus     AdjustmentStatus `gorm:"type:varchar(10);not null" json:"to_status"`

	Actor    string         `gorm:"type:varchar(120)" json:"actor,omitempty"`
	Metadata datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`

	ChangedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"changed_at"`
}

func (AdjustmentHistory) TableName() string {
	return "adjustment_histories"
}
