package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"aliquotas/internal/models"
)

func defaultSettings() models.CalculationSettings {
	return models.CalculationSettings{
		MinimumIntervalMonths: 12,
		RoundingPlaces:        2,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculate_Breakdown(t *testing.T) {
	in := CalculationInput{
		CurrentRent:          decimal.NewFromFloat(2000),
		IndexType:            models.IndexIGPM,
		AdjustmentPercentage: decimal.NewFromInt(8),
		ContractDate:         date(2024, time.March, 15),
		IPTUValue:            decimal.NewFromInt(150),
		CondominiumValue:     decimal.NewFromInt(300),
		OtherCharges:         decimal.Zero,
	}
	res, err := Calculate(defaultSettings(), in)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if got := res.NewRent.StringFixed(2); got != "2160.00" {
		t.Fatalf("new_rent=%s want=2160.00", got)
	}
	if got := res.IncreaseAmount.StringFixed(2); got != "160.00" {
		t.Fatalf("increase=%s want=160.00", got)
	}
	if got := res.TotalMonthlyPayment.StringFixed(2); got != "2610.00" {
		t.Fatalf("total=%s want=2610.00", got)
	}
	if want := date(2025, time.March, 15); !res.EffectiveDate.Equal(want) {
		t.Fatalf("effective=%s want=%s", res.EffectiveDate, want)
	}
}

func TestCalculate_RoundingHalfUp(t *testing.T) {
	// 1000 * 5.555% = 55.555 -> the half cent rounds up: increase 55.56
	in := CalculationInput{
		CurrentRent:          decimal.NewFromInt(1000),
		IndexType:            models.IndexIPCA,
		AdjustmentPercentage: decimal.NewFromFloat(5.555),
		ContractDate:         date(2024, time.January, 1),
	}
	res, err := Calculate(defaultSettings(), in)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if got := res.IncreaseAmount.StringFixed(2); got != "55.56" {
		t.Fatalf("increase=%s want=55.56", got)
	}
	if got := res.NewRent.StringFixed(2); got != "1055.56" {
		t.Fatalf("new_rent=%s want=1055.56", got)
	}
}

func TestCalculate_ZeroRoundingPlaces(t *testing.T) {
	settings := models.CalculationSettings{MinimumIntervalMonths: 12, RoundingPlaces: 0}
	in := CalculationInput{
		CurrentRent:          decimal.NewFromInt(1000),
		IndexType:            models.IndexIGPM,
		AdjustmentPercentage: decimal.NewFromFloat(5.555),
		ContractDate:         date(2024, time.January, 1),
	}
	res, err := Calculate(settings, in)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	// 55.555 rounds half-up to whole units.
	if got := res.IncreaseAmount.String(); got != "56" {
		t.Fatalf("increase=%s want=56", got)
	}
	if got := res.NewRent.String(); got != "1056" {
		t.Fatalf("new_rent=%s want=1056", got)
	}
}

func TestCalculate_TotalIncludesCharges(t *testing.T) {
	in := CalculationInput{
		CurrentRent:          decimal.NewFromInt(1500),
		IndexType:            models.IndexINCC,
		AdjustmentPercentage: decimal.Zero,
		ContractDate:         date(2023, time.June, 1),
		IPTUValue:            decimal.NewFromFloat(120.50),
		CondominiumValue:     decimal.NewFromFloat(450.25),
		OtherCharges:         decimal.NewFromFloat(30.25),
	}
	res, err := Calculate(defaultSettings(), in)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	want := res.NewRent.Add(in.IPTUValue).Add(in.CondominiumValue).Add(in.OtherCharges).Round(2)
	if res.TotalMonthlyPayment.Cmp(want) != 0 {
		t.Fatalf("total=%s want=%s", res.TotalMonthlyPayment, want)
	}
	if res.NewRent.Cmp(in.CurrentRent) != 0 {
		t.Fatalf("zero percentage must keep rent unchanged, got %s", res.NewRent)
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	last := date(2024, time.February, 10)
	in := CalculationInput{
		CurrentRent:          decimal.NewFromFloat(3333.33),
		IndexType:            models.IndexCustom,
		AdjustmentPercentage: decimal.NewFromFloat(4.25),
		ContractDate:         date(2022, time.February, 10),
		LastAdjustmentDate:   &last,
		IPTUValue:            decimal.NewFromInt(200),
	}
	first, err := Calculate(defaultSettings(), in)
	if err != nil {
		t.Fatalf("first calculate: %v", err)
	}
	second, err := Calculate(defaultSettings(), in)
	if err != nil {
		t.Fatalf("second calculate: %v", err)
	}
	if first.NewRent.Cmp(second.NewRent) != 0 ||
		first.IncreaseAmount.Cmp(second.IncreaseAmount) != 0 ||
		first.TotalMonthlyPayment.Cmp(second.TotalMonthlyPayment) != 0 ||
		!first.EffectiveDate.Equal(second.EffectiveDate) {
		t.Fatalf("calculate is not idempotent: %+v vs %+v", first, second)
	}
}

func TestCalculate_RejectsBadInput(t *testing.T) {
	base := CalculationInput{
		CurrentRent:          decimal.NewFromInt(1000),
		IndexType:            models.IndexIGPM,
		AdjustmentPercentage: decimal.NewFromInt(10),
		ContractDate:         date(2024, time.January, 1),
	}

	cases := []struct {
		name   string
		mutate func(*CalculationInput)
		field  string
	}{
		{"zero rent", func(in *CalculationInput) { in.CurrentRent = decimal.Zero }, "current_rent"},
		{"negative rent", func(in *CalculationInput) { in.CurrentRent = decimal.NewFromInt(-5) }, "current_rent"},
		{"percentage over 100", func(in *CalculationInput) { in.AdjustmentPercentage = decimal.NewFromInt(101) }, "adjustment_percentage"},
		{"negative percentage", func(in *CalculationInput) { in.AdjustmentPercentage = decimal.NewFromInt(-1) }, "adjustment_percentage"},
		{"negative iptu", func(in *CalculationInput) { in.IPTUValue = decimal.NewFromInt(-1) }, "iptu_value"},
		{"negative condo", func(in *CalculationInput) { in.CondominiumValue = decimal.NewFromInt(-1) }, "condominium_value"},
		{"negative other", func(in *CalculationInput) { in.OtherCharges = decimal.NewFromInt(-1) }, "other_charges"},
		{"bad index type", func(in *CalculationInput) { in.IndexType = "selic" }, "index_type"},
		{"missing contract date", func(in *CalculationInput) { in.ContractDate = time.Time{} }, "contract_date"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mutate(&in)
			_, err := Calculate(defaultSettings(), in)
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("err=%v want ValidationError", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("field=%s want=%s", verr.Field, tc.field)
			}
		})
	}
}

func TestCalculate_OverflowGuard(t *testing.T) {
	in := CalculationInput{
		CurrentRent:          decimal.New(1, 13),
		IndexType:            models.IndexCustom,
		AdjustmentPercentage: decimal.NewFromInt(100),
		ContractDate:         date(2024, time.January, 1),
	}
	_, err := Calculate(defaultSettings(), in)
	if _, ok := err.(*CalculationError); !ok {
		t.Fatalf("err=%v want CalculationError", err)
	}
}
