package models

// AdjustmentStatus is the lifecycle state of a RentAdjustment. Transitions are
// strictly forward: draft -> pending -> approved -> sent. "sent" is terminal.
// The PDF flag (IsGenerated) is orthogonal and not part of this machine.
type AdjustmentStatus string

const (
	StatusDraft    AdjustmentStatus = "draft"
	StatusPending  AdjustmentStatus = "pending"
	StatusApproved AdjustmentStatus = "approved"
	StatusSent     AdjustmentStatus = "sent"
)

func (s AdjustmentStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusSent:
		return true
	}
	return false
}

// transitions is the single source of truth for allowed lifecycle moves.
var transitions = map[AdjustmentStatus]AdjustmentStatus{
	StatusDraft:    StatusPending,
	StatusPending:  StatusApproved,
	StatusApproved: StatusSent,
}

// CanTransition reports whether from -> to is a legal lifecycle move.
func CanTransition(from, to AdjustmentStatus) bool {
	next, ok := transitions[from]
	return ok && next == to
}

// NextStatus returns the only legal successor of s, or "" when s is terminal.
func NextStatus(s AdjustmentStatus) AdjustmentStatus {
	return transitions[s]
}

// AllStatuses lists lifecycle states in order, for stats and validation.
func AllStatuses() []AdjustmentStatus {
	return []AdjustmentStatus{StatusDraft, StatusPending, StatusApproved, StatusSent}
}
