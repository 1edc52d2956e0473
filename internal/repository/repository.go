package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"aliquotas/internal/models"
)

// ErrConflict is returned when a conditional status update loses a concurrent
// race: the record's state no longer matches the expected prior state.
var ErrConflict = errors.New("adjustment was modified concurrently")

// ErrInvalidTransition is returned when the requested lifecycle move is not in
// the transition table. The record is left untouched.
var ErrInvalidTransition = errors.New("invalid lifecycle transition")

// ErrNotFound is returned when the referenced adjustment does not exist.
var ErrNotFound = errors.New("adjustment not found")

// ListAdjustmentsParams filters and pages the adjustment listing.
type ListAdjustmentsParams struct {
	Limit  int
	Offset int

	Status      *models.AdjustmentStatus
	IndexType   *models.IndexType
	IsGenerated *bool
	Search      *string // matches tenant name or property address

	OrderBy string // created_at | effective_date | updated_at
	Asc     *bool
}

// StatusCounts is the per-state census of the adjustment table.
type StatusCounts struct {
	Draft    int64
	Pending  int64
	Approved int64
	Sent     int64
}

func (c StatusCounts) Total() int64 {
	return c.Draft + c.Pending + c.Approved + c.Sent
}

// Repository is the persistence surface of the adjustment engine. The write
// side is small by design: inserts, one conditional transition, and the
// orthogonal generated flag. Everything else is reads.
type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Adjustments.
	InsertAdjustment(ctx context.Context, item *models.RentAdjustment) error
	GetAdjustmentByID(ctx context.Context, id string) (*models.RentAdjustment, error)
	ListAdjustments(ctx context.Context, params ListAdjustmentsParams) ([]models.RentAdjustment, error)
	CountAdjustments(ctx context.Context, params ListAdjustmentsParams) (int64, error)
	ListAdjustmentsByIDs(ctx context.Context, ids []string) ([]models.RentAdjustment, error)

	// TransitionStatus performs the conditional state move and appends the
	// audit row in one transaction. The update is guarded on the current
	// status matching from; a lost race yields ErrConflict, an illegal move
	// ErrInvalidTransition, an unknown id ErrNotFound.
	TransitionStatus(ctx context.Context, id string, from, to models.AdjustmentStatus, actor string) error

	// MarkGenerated flips is_generated for the given records. Idempotent and
	// deliberately writes no history rows.
	MarkGenerated(ctx context.Context, ids []string) error

	ListHistory(ctx context.Context, adjustmentID string) ([]models.AdjustmentHistory, error)

	// Stats reads.
	CountByStatus(ctx context.Context) (StatusCounts, error)
	CountGenerated(ctx context.Context) (int64, error)
	ListRecentAdjustments(ctx context.Context, limit int) ([]models.RentAdjustment, error)
	ListPendingOldestFirst(ctx context.Context, limit int) ([]models.RentAdjustment, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)

	// Calculation settings (singleton default).
	GetDefaultCalculationSettings(ctx context.Context) (*models.CalculationSettings, error)
	GetCalculationSettingsByName(ctx context.Context, name string) (*models.CalculationSettings, error)
	SaveCalculationSettings(ctx context.Context, item *models.CalculationSettings) error
	SetDefaultCalculationSettings(ctx context.Context, id string) error

	// PDF templates (singleton default).
	GetDefaultPDFTemplate(ctx context.Context) (*models.PDFTemplate, error)
	GetPDFTemplateByName(ctx context.Context, name string) (*models.PDFTemplate, error)
	SavePDFTemplate(ctx context.Context, item *models.PDFTemplate) error
	SetDefaultPDFTemplate(ctx context.Context, id string) error
}
