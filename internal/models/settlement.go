package models

import "time"

// SettlementStatus is the lifecycle state of a settlement period.
// Closing is monotonic: once settled, the scheduler never reopens a
// period.
type SettlementStatus string

const (
	SettlementOpen    SettlementStatus = "open"
	SettlementSettled SettlementStatus = "settled"
)

// Settlement is one settlement period's record for a space, keyed by
// a period identifier of the form "2025-W07". Expenses accrue into it
// during the period (written by the management application); the
// scheduler's only write is the close transition.
type Settlement struct {
	// SpaceID is the owning space.
	SpaceID string

	// PeriodID identifies the settlement period ("YYYY-Www").
	PeriodID string

	// Status is open until the period is settled.
	Status SettlementStatus

	// Participants maps participant name to their contribution in KRW.
	Participants map[string]int64

	// TotalAmount is the period's accrued total in KRW.
	TotalAmount int64

	// SettledAt is set when the period is closed.
	SettledAt *time.Time

	// AutoSettled distinguishes schedule-driven closes from manual
	// ones performed by a space manager.
	AutoSettled bool

	// SettledBySchedule snapshots the schedule that triggered an
	// automatic close, for audit.
	SettledBySchedule *SettlementSchedule
}
