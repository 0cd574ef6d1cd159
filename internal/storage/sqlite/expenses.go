package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/loungeap/spaceops/internal/models"
)

// CountPendingExpenses counts a space's expenses awaiting approval.
func (s *SQLiteStore) CountPendingExpenses(ctx context.Context, spaceID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM expenses WHERE space_id = ? AND status = ?",
		spaceID, models.ExpensePending,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending expenses: %w", err)
	}
	return count, nil
}

// CreateExpense persists a new expense record. Used by the approval
// workflow on the management side and by tests.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.Status == "" {
		expense.Status = models.ExpensePending
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (id, space_id, title, amount, status, submitted_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.SpaceID, expense.Title, expense.Amount,
		expense.Status, expense.SubmittedBy, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}
