package models

import (
	"time"

	"gorm.io/datatypes"
)

// PDFTemplate describes letterhead and layout parameters for the compliance
// report. Exactly one row is flagged is_default at any time.
type PDFTemplate struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Name string `gorm:"type:varchar(120);not null;uniqueIndex" json:"name"`

	LetterheadTitle    string `gorm:"type:varchar(200);not null" json:"letterhead_title"`
	LetterheadSubtitle string `gorm:"type:varchar(300)" json:"letterhead_subtitle"`
	FooterText         string `gorm:"type:varchar(300)" json:"footer_text"`

	// Layout knobs (margins, font sizes) as free-form JSON so templates can
	// evolve without schema churn.
	Layout datatypes.JSON `gorm:"type:jsonb" json:"layout,omitempty"`

	IsDefault bool `gorm:"not null;default:false;index" json:"is_default"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (PDFTemplate) TableName() string {
	return "pdf_templates"
}
