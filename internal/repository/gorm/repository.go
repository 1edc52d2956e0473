package gormrepository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aliquotas/internal/models"
	"aliquotas/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *Store) InsertAdjustment(ctx context.Context, item *models.RentAdjustment) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetAdjustmentByID(ctx context.Context, id string) (*models.RentAdjustment, error) {
	if s == nil || s.db == nil || id == "" {
		return nil, nil
	}
	var item models.RentAdjustment
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func adjustmentsQuery(db *gorm.DB, params repository.ListAdjustmentsParams) *gorm.DB {
	query := db.Model(&models.RentAdjustment{})
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.IndexType != nil {
		query = query.Where("index_type = ?", *params.IndexType)
	}
	if params.IsGenerated != nil {
		query = query.Where("is_generated = ?", *params.IsGenerated)
	}
	if params.Search != nil {
		needle := "%" + strings.TrimSpace(*params.Search) + "%"
		query = query.Where("tenant_name ILIKE ? OR property_address ILIKE ?", needle, needle)
	}
	return query
}

func (s *Store) ListAdjustments(ctx context.Context, params repository.ListAdjustmentsParams) ([]models.RentAdjustment, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := adjustmentsQuery(s.db.WithContext(ctx), params)

	orderBy := params.OrderBy
	switch orderBy {
	case "created_at", "effective_date", "updated_at":
	default:
		orderBy = "created_at"
	}
	dir := "desc"
	if params.Asc != nil && *params.Asc {
		dir = "asc"
	}
	query = query.Order(orderBy + " " + dir)

	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}

	var items []models.RentAdjustment
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountAdjustments(ctx context.Context, params repository.ListAdjustmentsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	err := adjustmentsQuery(s.db.WithContext(ctx), params).Count(&total).Error
	return total, err
}

func (s *Store) ListAdjustmentsByIDs(ctx context.Context, ids []string) ([]models.RentAdjustment, error) {
	if s == nil || s.db == nil || len(ids) == 0 {
		return nil, nil
	}
	var items []models.RentAdjustment
	err := s.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("property_address asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// TransitionStatus performs the expected-prior-state guarded update and the
// history append in one transaction. A losing concurrent writer sees zero
// rows affected and gets ErrConflict; no history row is written for it.
func (s *Store) TransitionStatus(ctx context.Context, id string, from, to models.AdjustmentStatus, actor string) error {
	if s == nil || s.db == nil || id == "" {
		return repository.ErrNotFound
	}
	if !models.CanTransition(from, to) {
		return repository.ErrInvalidTransition
	}
	return s.InTx(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&models.RentAdjustment{}).
			Where("id = ?", id).
			Where("status = ?", from).
			Updates(map[string]any{
				"status":     to,
				"updated_at": time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var current models.RentAdjustment
			err := tx.Select("status").Where("id = ?", id).First(&current).Error
			if err == gorm.ErrRecordNotFound {
				return repository.ErrNotFound
			}
			if err != nil {
				return err
			}
			return repository.ErrConflict
		}
		return tx.Create(&models.AdjustmentHistory{
			AdjustmentID: id,
			FromStatus:   from,
			ToStatus:     to,
			Actor:        actor,
			ChangedAt:    time.Now().UTC(),
		}).Error
	})
}

func (s *Store) MarkGenerated(ctx context.Context, ids []string) error {
	if s == nil || s.db == nil || len(ids) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.RentAdjustment{}).
		Where("id IN ?", ids).
		Where("is_generated = ?", false).
		Updates(map[string]any{
			"is_generated": true,
			"updated_at":   time.Now().UTC(),
		}).Error
}

func (s *Store) ListHistory(ctx context.Context, adjustmentID string) ([]models.AdjustmentHistory, error) {
	if s == nil || s.db == nil || adjustmentID == "" {
		return nil, nil
	}
	var items []models.AdjustmentHistory
	err := s.db.WithContext(ctx).
		Where("adjustment_id = ?", adjustmentID).
		Order("changed_at asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountByStatus(ctx context.Context) (repository.StatusCounts, error) {
	var counts repository.StatusCounts
	if s == nil || s.db == nil {
		return counts, nil
	}
	var rows []struct {
		Status models.AdjustmentStatus
		N      int64
	}
	err := s.db.WithContext(ctx).
		Model(&models.RentAdjustment{}).
		Select("status, count(*) as n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return counts, err
	}
	for _, row := range rows {
		switch row.Status {
		case models.StatusDraft:
			counts.Draft = row.N
		case models.StatusPending:
			counts.Pending = row.N
		case models.StatusApproved:
			counts.Approved = row.N
		case models.StatusSent:
			counts.Sent = row.N
		}
	}
	return counts, nil
}

func (s *Store) CountGenerated(ctx context.Context) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.RentAdjustment{}).
		Where("is_generated = ?", true).
		Count(&total).Error
	return total, err
}

func (s *Store) ListRecentAdjustments(ctx context.Context, limit int) ([]models.RentAdjustment, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.RentAdjustment
	err := s.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListPendingOldestFirst(ctx context.Context, limit int) ([]models.RentAdjustment, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.RentAdjustment
	err := s.db.WithContext(ctx).
		Where("status = ?", models.StatusPending).
		Order("created_at asc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.RentAdjustment{}).
		Where("created_at >= ?", from).
		Where("created_at < ?", to).
		Count(&total).Error
	return total, err
}

func (s *Store) GetDefaultCalculationSettings(ctx context.Context) (*models.CalculationSettings, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.CalculationSettings
	err := s.db.WithContext(ctx).
		Where("is_default = ?", true).
		First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetCalculationSettingsByName(ctx context.Context, name string) (*models.CalculationSettings, error) {
	if s == nil || s.db == nil || name == "" {
		return nil, nil
	}
	var item models.CalculationSettings
	err := s.db.WithContext(ctx).
		Where("name = ?", name).
		First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) SaveCalculationSettings(ctx context.Context, item *models.CalculationSettings) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Save(item).Error
}

// SetDefaultCalculationSettings enforces the exactly-one-default invariant:
// clearing the old flag and setting the new one happen in one transaction.
func (s *Store) SetDefaultCalculationSettings(ctx context.Context, id string) error {
	if s == nil || s.db == nil || id == "" {
		return nil
	}
	return s.InTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Model(&models.CalculationSettings{}).
			Where("is_default = ?", true).
			Where("id <> ?", id).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.CalculationSettings{}).
			Where("id = ?", id).
			Update("is_default", true).Error
	})
}

func (s *Store) GetDefaultPDFTemplate(ctx context.Context) (*models.PDFTemplate, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.PDFTemplate
	err := s.db.WithContext(ctx).
		Where("is_default = ?", true).
		First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetPDFTemplateByName(ctx context.Context, name string) (*models.PDFTemplate, error) {
	if s == nil || s.db == nil || name == "" {
		return nil, nil
	}
	var item models.PDFTemplate
	err := s.db.WithContext(ctx).
		Where("name = ?", name).
		First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) SavePDFTemplate(ctx context.Context, item *models.PDFTemplate) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *Store) SetDefaultPDFTemplate(ctx context.Context, id string) error {
	if s == nil || s.db == nil || id == "" {
		return nil
	}
	return s.InTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Model(&models.PDFTemplate{}).
			Where("is_default = ?", true).
			Where("id <> ?", id).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.PDFTemplate{}).
			Where("id = ?", id).
			Update("is_default", true).Error
	})
}
