package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"aliquotas/internal/engine"
	"aliquotas/internal/models"
	"aliquotas/internal/repository"
)

// AdjustmentService runs the validate -> calculate -> persist pipeline. The
// active CalculationSettings row is read once per operation and passed down
// explicitly; nothing in the pipeline reads ambient state.
type AdjustmentService struct {
	Repo   repository.Repository
	Logger *zap.Logger

	// Fallbacks when no default settings row exists yet.
	DefaultIntervalMonths int
	DefaultRoundingPlaces int32
}

// CreateParams is a calculation input plus the display identifiers needed to
// persist a record.
type CreateParams struct {
	engine.CalculationInput

	TenantName      string
	PropertyAddress string

	// Submit promotes the record to pending immediately after creation.
	Submit bool
	Actor  string
}

// Preview validates eligibility and computes the breakdown without persisting
// anything. An ineligible lease returns *engine.EligibilityError.
func (s *AdjustmentService) Preview(ctx context.Context, in engine.CalculationInput) (engine.CalculationResult, error) {
	settings, err := s.activeSettings(ctx)
	if err != nil {
		return engine.CalculationResult{}, err
	}

	elig := engine.Eligibility(settings, in.ContractDate, in.LastAdjustmentDate, time.Now().UTC())
	if !elig.Valid {
		return engine.CalculationResult{}, &engine.EligibilityError{
			Reason:          elig.Reason,
			MonthsRemaining: elig.MonthsRemaining,
		}
	}

	return engine.Calculate(settings, in)
}

// Create runs Preview and persists the result as a draft record, optionally
// promoting it to pending in the same call.
func (s *AdjustmentService) Create(ctx context.Context, params CreateParams) (*models.RentAdjustment, error) {
	if params.TenantName == "" {
		return nil, &engine.ValidationError{Field: "tenant_name", Reason: "is required"}
	}
	if params.PropertyAddress == "" {
		return nil, &engine.ValidationError{Field: "property_address", Reason: "is required"}
	}

	result, err := s.Preview(ctx, params.CalculationInput)
	if err != nil {
		return nil, err
	}

	item := &models.RentAdjustment{
		TenantName:           params.TenantName,
		PropertyAddress:      params.PropertyAddress,
		IndexType:            params.IndexType,
		AdjustmentPercentage: params.AdjustmentPercentage,
		CurrentRent:          params.CurrentRent,
		IPTUValue:            params.IPTUValue,
		CondominiumValue:     params.CondominiumValue,
		OtherCharges:         params.OtherCharges,
		ContractDate:         params.ContractDate,
		LastAdjustmentDate:   params.LastAdjustmentDate,
		NewRent:              result.NewRent,
		IncreaseAmount:       result.IncreaseAmount,
		TotalMonthlyPayment:  result.TotalMonthlyPayment,
		EffectiveDate:        result.EffectiveDate,
		Status:               models.StatusDraft,
	}
	if err := s.Repo.InsertAdjustment(ctx, item); err != nil {
		return nil, err
	}

	if params.Submit {
		if err := s.Repo.TransitionStatus(ctx, item.ID, models.StatusDraft, models.StatusPending, params.Actor); err != nil {
			return nil, err
		}
		item.Status = models.StatusPending
	}

	if s.Logger != nil {
		s.Logger.Info("adjustment created",
			zap.String("id", item.ID),
			zap.String("status", string(item.Status)),
			zap.String("index_type", string(item.IndexType)),
		)
	}
	return item, nil
}

func (s *AdjustmentService) activeSettings(ctx context.Context) (models.CalculationSettings, error) {
	settings, err := s.Repo.GetDefaultCalculationSettings(ctx)
	if err != nil {
		return models.CalculationSettings{}, err
	}
	if settings != nil {
		return *settings, nil
	}
	interval := s.DefaultIntervalMonths
	if interval <= 0 {
		interval = 12
	}
	places := s.DefaultRoundingPlaces
	if places <= 0 {
		places = 2
	}
	return models.CalculationSettings{
		MinimumIntervalMonths: interval,
		RoundingPlaces:        places,
	}, nil
}
