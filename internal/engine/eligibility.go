package engine

import (
	"fmt"
	"time"

	"aliquotas/internal/models"
)

// EligibilityResult is the outcome of the minimum-interval check. When the
// lease is not yet eligible, Reason and MonthsRemaining are populated.
type EligibilityResult struct {
	Valid           bool   `json:"valid"`
	Reason          string `json:"reason,omitempty"`
	MonthsRemaining int    `json:"months_remaining,omitempty"`
	ElapsedMonths   int    `json:"elapsed_months"`
}

// Eligibility decides whether a new adjustment may be created for a lease.
// The reference date is the last adjustment date, or the contract date when no
// prior adjustment exists. Pure function of its inputs and the supplied
// settings; malformed date combinations are rejected with a distinct reason
// rather than producing a negative remainder.
func Eligibility(settings models.CalculationSettings, contractDate time.Time, lastAdjustmentDate *time.Time, now time.Time) EligibilityResult {
	if lastAdjustmentDate != nil {
		if lastAdjustmentDate.After(now) {
			return EligibilityResult{
				Valid:  false,
				Reason: "last adjustment date is in the future",
			}
		}
		if lastAdjustmentDate.Before(contractDate) {
			return EligibilityResult{
				Valid:  false,
				Reason: "last adjustment date precedes the contract date",
			}
		}
	}

	ref := referenceDate(contractDate, lastAdjustmentDate)
	elapsed := WholeMonthsBetween(ref, now)
	if elapsed < 0 {
		return EligibilityResult{
			Valid:  false,
			Reason: "contract date is in the future",
		}
	}

	min := settings.MinimumIntervalMonths
	if elapsed < min {
		remaining := min - elapsed
		return EligibilityResult{
			Valid: false,
			Reason: fmt.Sprintf(
				"minimum interval of %d months between adjustments not yet elapsed (%d elapsed)",
				min, elapsed),
			MonthsRemaining: remaining,
			ElapsedMonths:   elapsed,
		}
	}

	return EligibilityResult{Valid: true, ElapsedMonths: elapsed}
}
