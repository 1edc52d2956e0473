package service

import (
	"context"

	"go.uber.org/zap"

	"aliquotas/internal/models"
	"aliquotas/internal/repository"
)

// LifecycleService moves adjustments through the approval lifecycle. Each
// move is a conditional write guarded on the state the caller observed, so a
// lost race surfaces as repository.ErrConflict instead of a silent overwrite.
type LifecycleService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

// Submit promotes a draft to pending.
func (s *LifecycleService) Submit(ctx context.Context, id, actor string) (*models.RentAdjustment, error) {
	return s.transition(ctx, id, models.StatusPending, actor)
}

// Approve promotes a pending record to approved.
func (s *LifecycleService) Approve(ctx context.Context, id, actor string) (*models.RentAdjustment, error) {
	return s.transition(ctx, id, models.StatusApproved, actor)
}

// Send marks an approved record as delivered to the tenant. Delivery itself
// is handled by an external collaborator; this only records the fact.
func (s *LifecycleService) Send(ctx context.Context, id, actor string) (*models.RentAdjustment, error) {
	return s.transition(ctx, id, models.StatusSent, actor)
}

func (s *LifecycleService) transition(ctx context.Context, id string, to models.AdjustmentStatus, actor string) (*models.RentAdjustment, error) {
	current, err := s.Repo.GetAdjustmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, repository.ErrNotFound
	}
	if !models.CanTransition(current.Status, to) {
		return nil, repository.ErrInvalidTransition
	}
	if err := s.Repo.TransitionStatus(ctx, id, current.Status, to, actor); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("adjustment transitioned",
			zap.String("id", id),
			zap.String("from", string(current.Status)),
			zap.String("to", string(to)),
		)
	}
	return s.Repo.GetAdjustmentByID(ctx, id)
}
