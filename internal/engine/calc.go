package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"aliquotas/internal/models"
)

var percentMax = decimal.NewFromInt(100)

// maxMonetary is a defensive ceiling. Any derived amount beyond it is treated
// as an arithmetic anomaly, not a legitimate rent.
var maxMonetary = decimal.New(1, 12) // 10^12

// CalculationInput carries everything needed to compute one adjustment.
// Numeric ranges are expected to be pre-validated by the caller's input layer;
// Calculate still re-checks them so a bypassed handler cannot persist garbage.
type CalculationInput struct {
	CurrentRent          decimal.Decimal
	IndexType            models.IndexType
	AdjustmentPercentage decimal.Decimal

	ContractDate       time.Time
	LastAdjustmentDate *time.Time

	IPTUValue        decimal.Decimal
	CondominiumValue decimal.Decimal
	OtherCharges     decimal.Decimal
}

// CalculationResult is the full breakdown plus the echoed inputs, so the
// caller can persist or display it without recomputation.
type CalculationResult struct {
	Input CalculationInput

	IncreaseAmount      decimal.Decimal
	NewRent             decimal.Decimal
	TotalCharges        decimal.Decimal
	TotalMonthlyPayment decimal.Decimal
	EffectiveDate       time.Time
}

// Calculate computes the new rent, the increase, and the total monthly
// obligation including ancillary charges. Pure: no persistence, no clock
// reads, identical inputs yield identical output. Each derived monetary
// quantity is rounded half-up to the configured places exactly once.
func Calculate(settings models.CalculationSettings, in CalculationInput) (CalculationResult, error) {
	if err := checkInput(in); err != nil {
		return CalculationResult{}, err
	}

	// Zero is a legitimate setting (round to whole currency units); only a
	// negative value falls back.
	places := settings.RoundingPlaces
	if places < 0 {
		places = 2
	}

	increase := in.CurrentRent.Mul(in.AdjustmentPercentage).Div(percentMax).Round(places)
	newRent := in.CurrentRent.Add(in.CurrentRent.Mul(in.AdjustmentPercentage).Div(percentMax)).Round(places)
	totalCharges := in.IPTUValue.Add(in.CondominiumValue).Add(in.OtherCharges)
	totalMonthly := newRent.Add(totalCharges).Round(places)

	if newRent.Cmp(maxMonetary) > 0 || totalMonthly.Cmp(maxMonetary) > 0 {
		return CalculationResult{}, &CalculationError{Detail: "derived amount exceeds representable range"}
	}

	return CalculationResult{
		Input:               in,
		IncreaseAmount:      increase,
		NewRent:             newRent,
		TotalCharges:        totalCharges,
		TotalMonthlyPayment: totalMonthly,
		EffectiveDate:       EffectiveDate(settings.MinimumIntervalMonths, in.ContractDate, in.LastAdjustmentDate),
	}, nil
}

func checkInput(in CalculationInput) error {
	if !in.IndexType.Valid() {
		return &ValidationError{Field: "index_type", Reason: "must be one of igpm, ipca, incc, custom"}
	}
	if in.CurrentRent.Sign() <= 0 {
		return &ValidationError{Field: "current_rent", Reason: "must be greater than zero"}
	}
	if in.AdjustmentPercentage.Sign() < 0 || in.AdjustmentPercentage.Cmp(percentMax) > 0 {
		return &ValidationError{Field: "adjustment_percentage", Reason: "must be between 0 and 100"}
	}
	if in.IPTUValue.Sign() < 0 {
		return &ValidationError{Field: "iptu_value", Reason: "must not be negative"}
	}
	if in.CondominiumValue.Sign() < 0 {
		return &ValidationError{Field: "condominium_value", Reason: "must not be negative"}
	}
	if in.OtherCharges.Sign() < 0 {
		return &ValidationError{Field: "other_charges", Reason: "must not be negative"}
	}
	if in.ContractDate.IsZero() {
		return &ValidationError{Field: "contract_date", Reason: "is required"}
	}
	return nil
}
