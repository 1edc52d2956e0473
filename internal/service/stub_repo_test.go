package service

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"gorm.io/gorm"

	"aliquotas/internal/models"
	"aliquotas/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
// TransitionStatus reproduces the store's conditional-update semantics so
// conflict behavior is testable without a database.
type stubRepo struct {
	mu sync.Mutex

	adjustments map[string]*models.RentAdjustment
	history     []models.AdjustmentHistory
	settings    *models.CalculationSettings
	template    *models.PDFTemplate
	nextID      int
}

func newStubRepo() *stubRepo {
	return &stubRepo{adjustments: map[string]*models.RentAdjustment{}}
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

func (s *stubRepo) InsertAdjustment(ctx context.Context, item *models.RentAdjustment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == "" {
		s.nextID++
		item.ID = "adj-" + strconv.Itoa(s.nextID)
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	cp := *item
	s.adjustments[item.ID] = &cp
	return nil
}

func (s *stubRepo) GetAdjustmentByID(ctx context.Context, id string) (*models.RentAdjustment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.adjustments[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (s *stubRepo) ListAdjustments(ctx context.Context, params repository.ListAdjustmentsParams) ([]models.RentAdjustment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []models.RentAdjustment
	for _, a := range s.adjustments {
		if params.Status != nil && a.Status != *params.Status {
			continue
		}
		items = append(items, *a)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	if params.Limit > 0 && len(items) > params.Limit {
		items = items[:params.Limit]
	}
	return items, nil
}

func (s *stubRepo) CountAdjustments(ctx context.Context, params repository.ListAdjustmentsParams) (int64, error) {
	items, _ := s.ListAdjustments(ctx, repository.ListAdjustmentsParams{Status: params.Status})
	return int64(len(items)), nil
}

func (s *stubRepo) ListAdjustmentsByIDs(ctx context.Context, ids []string) ([]models.RentAdjustment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []models.RentAdjustment
	for _, id := range ids {
		if a, ok := s.adjustments[id]; ok {
			items = append(items, *a)
		}
	}
	return items, nil
}

func (s *stubRepo) TransitionStatus(ctx context.Context, id string, from, to models.AdjustmentStatus, actor string) error {
	if !models.CanTransition(from, to) {
		return repository.ErrInvalidTransition
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.adjustments[id]
	if !ok {
		return repository.ErrNotFound
	}
	if item.Status != from {
		return repository.ErrConflict
	}
	item.Status = to
	item.UpdatedAt = time.Now().UTC()
	s.history = append(s.history, models.AdjustmentHistory{
		AdjustmentID: id,
		FromStatus:   from,
		ToStatus:     to,
		Actor:        actor,
		ChangedAt:    time.Now().UTC(),
	})
	return nil
}

func (s *stubRepo) MarkGenerated(ctx context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if a, ok := s.adjustments[id]; ok {
			a.IsGenerated = true
		}
	}
	return nil
}

func (s *stubRepo) ListHistory(ctx context.Context, adjustmentID string) ([]models.AdjustmentHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []models.AdjustmentHistory
	for _, h := range s.history {
		if h.AdjustmentID == adjustmentID {
			items = append(items, h)
		}
	}
	return items, nil
}

func (s *stubRepo) CountByStatus(ctx context.Context) (repository.StatusCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var counts repository.StatusCounts
	for _, a := range s.adjustments {
		switch a.Status {
		case models.StatusDraft:
			counts.Draft++
		case models.StatusPending:
			counts.Pending++
		case models.StatusApproved:
			counts.Approved++
		case models.StatusSent:
			counts.Sent++
		}
	}
	return counts, nil
}

func (s *stubRepo) CountGenerated(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, a := range s.adjustments {
		if a.IsGenerated {
			n++
		}
	}
	return n, nil
}

func (s *stubRepo) ListRecentAdjustments(ctx context.Context, limit int) ([]models.RentAdjustment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []models.RentAdjustment
	for _, a := range s.adjustments {
		items = append(items, *a)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *stubRepo) ListPendingOldestFirst(ctx context.Context, limit int) ([]models.RentAdjustment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []models.RentAdjustment
	for _, a := range s.adjustments {
		if a.Status == models.StatusPending {
			items = append(items, *a)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *stubRepo) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, a := range s.adjustments {
		if !a.CreatedAt.Before(from) && a.CreatedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

func (s *stubRepo) GetDefaultCalculationSettings(ctx context.Context) (*models.CalculationSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings == nil {
		return nil, nil
	}
	cp := *s.settings
	return &cp, nil
}

func (s *stubRepo) GetCalculationSettingsByName(ctx context.Context, name string) (*models.CalculationSettings, error) {
	return s.GetDefaultCalculationSettings(ctx)
}

func (s *stubRepo) SaveCalculationSettings(ctx context.Context, item *models.CalculationSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == "" {
		item.ID = "settings-1"
	}
	cp := *item
	s.settings = &cp
	return nil
}

func (s *stubRepo) SetDefaultCalculationSettings(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings != nil && s.settings.ID == id {
		s.settings.IsDefault = true
	}
	return nil
}

func (s *stubRepo) GetDefaultPDFTemplate(ctx context.Context) (*models.PDFTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.template == nil {
		return nil, nil
	}
	cp := *s.template
	return &cp, nil
}

func (s *stubRepo) GetPDFTemplateByName(ctx context.Context, name string) (*models.PDFTemplate, error) {
	return s.GetDefaultPDFTemplate(ctx)
}

func (s *stubRepo) SavePDFTemplate(ctx context.Context, item *models.PDFTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == "" {
		item.ID = "tpl-1"
	}
	cp := *item
	s.template = &cp
	return nil
}

func (s *stubRepo) SetDefaultPDFTemplate(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.template != nil && s.template.ID == id {
		s.template.IsDefault = true
	}
	return nil
}
