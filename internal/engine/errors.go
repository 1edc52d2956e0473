package engine

import "fmt"

// ValidationError reports client input outside the declared ranges. It carries
// the offending field so the handler layer can surface field-level detail.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// EligibilityError is the expected outcome when the minimum interval between
// adjustments has not yet elapsed. MonthsRemaining lets the caller render
// "available again on ...".
type EligibilityError struct {
	Reason          string
	MonthsRemaining int
}

func (e *EligibilityError) Error() string {
	return e.Reason
}

// CalculationError signals an internal numeric anomaly. It indicates a latent
// arithmetic bug and must never be swallowed.
type CalculationError struct {
	Detail string
}

func (e *CalculationError) Error() string {
	return "calculation error: " + e.Detail
}
