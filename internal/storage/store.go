// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/loungeap/spaceops/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	// Callers distinguish it from infrastructure faults: a missing
	// schedule or settlement is an expected steady state, not an
	// error.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadySettled is returned by CloseSettlement when the
	// period was settled before this call. The close transition is
	// idempotent; repeated triggers must not double-close.
	ErrAlreadySettled = errors.New("settlement already settled")
)

// Store defines the persistence operations the scheduler needs.
// This abstraction allows swapping storage backends (SQLite,
// PostgreSQL, etc.) without changing the job layer, and makes the
// jobs testable against in-memory fakes.
type Store interface {
	// ListSpaces enumerates every space, in a stable order for one
	// call.
	ListSpaces(ctx context.Context) ([]models.Space, error)

	// GetSettlementSchedule returns a space's auto-close schedule.
	// Returns ErrNotFound if the space never configured one.
	GetSettlementSchedule(ctx context.Context, spaceID string) (*models.SettlementSchedule, error)

	// GetEmailSettings returns a space's expense-reminder settings.
	// Returns ErrNotFound if the space never configured them.
	GetEmailSettings(ctx context.Context, spaceID string) (*models.EmailSettings, error)

	// GetSettlement returns the settlement record for one period.
	// Returns ErrNotFound if no expenses accrued for that period.
	GetSettlement(ctx context.Context, spaceID, periodID string) (*models.Settlement, error)

	// CloseSettlement transitions a settlement to settled in a single
	// atomic update, recording when it happened and the schedule that
	// triggered it. Returns ErrNotFound if the record does not exist
	// and ErrAlreadySettled if it was settled before this call.
	CloseSettlement(ctx context.Context, spaceID, periodID string, settledAt time.Time, schedule models.SettlementSchedule) error

	// CountPendingExpenses counts a space's expenses awaiting
	// approval.
	CountPendingExpenses(ctx context.Context, spaceID string) (int, error)

	// SaveJobRun persists the audit record of one invocation.
	SaveJobRun(ctx context.Context, run *models.JobRun) error

	// ListJobRuns returns the most recent run records, newest first.
	ListJobRuns(ctx context.Context, limit int) ([]models.JobRun, error)

	// Close releases any resources held by the store.
	Close() error
}
