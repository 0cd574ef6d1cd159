package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/loungeap/spaceops/internal/models"
	"github.com/loungeap/spaceops/internal/storage"
)

// GetSettlement retrieves one period's settlement record, including
// participant contributions.
func (s *SQLiteStore) GetSettlement(ctx context.Context, spaceID, periodID string) (*models.Settlement, error) {
	settlement := &models.Settlement{SpaceID: spaceID, PeriodID: periodID}
	var (
		settledAt sql.NullInt64
		auto      int
		snapshot  sql.NullString
	)

	err := s.db.QueryRowContext(ctx,
		`SELECT status, total_amount, settled_at, auto_settled, settled_by_schedule
		 FROM settlements WHERE space_id = ? AND period_id = ?`,
		spaceID, periodID,
	).Scan(&settlement.Status, &settlement.TotalAmount, &settledAt, &auto, &snapshot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}

	settlement.AutoSettled = auto != 0
	if settledAt.Valid {
		t := time.UnixMilli(settledAt.Int64)
		settlement.SettledAt = &t
	}
	if snapshot.Valid && snapshot.String != "" {
		var schedule models.SettlementSchedule
		if err := json.Unmarshal([]byte(snapshot.String), &schedule); err != nil {
			return nil, fmt.Errorf("failed to decode schedule snapshot: %w", err)
		}
		settlement.SettledBySchedule = &schedule
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, amount FROM settlement_participants
		 WHERE space_id = ? AND period_id = ? ORDER BY name`,
		spaceID, periodID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement participants: %w", err)
	}
	defer rows.Close()

	settlement.Participants = make(map[string]int64)
	for rows.Next() {
		var (
			name   string
			amount int64
		)
		if err := rows.Scan(&name, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan settlement participant: %w", err)
		}
		settlement.Participants[name] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlement participants: %w", err)
	}

	return settlement, nil
}

// CloseSettlement transitions a settlement to settled.
//
// The transition is a single conditional UPDATE guarded on the
// current status, so a concurrent trigger firing for the same tick
// cannot double-close: exactly one caller wins, the rest observe
// ErrAlreadySettled.
func (s *SQLiteStore) CloseSettlement(ctx context.Context, spaceID, periodID string, settledAt time.Time, schedule models.SettlementSchedule) error {
	snapshot, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("failed to encode schedule snapshot: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE settlements
		 SET status = ?, settled_at = ?, auto_settled = 1, settled_by_schedule = ?
		 WHERE space_id = ? AND period_id = ? AND status != ?`,
		models.SettlementSettled, settledAt.UnixMilli(), string(snapshot),
		spaceID, periodID, models.SettlementSettled,
	)
	if err != nil {
		return fmt.Errorf("failed to close settlement: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read close result: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// Nothing updated: the record is either missing or already closed.
	var status string
	err = s.db.QueryRowContext(ctx,
		"SELECT status FROM settlements WHERE space_id = ? AND period_id = ?",
		spaceID, periodID,
	).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check settlement status: %w", err)
	}
	return storage.ErrAlreadySettled
}

// CreateSettlement persists an open settlement record with its
// participant contributions. Used by the accrual side and by tests.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.Status == "" {
		settlement.Status = models.SettlementOpen
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO settlements (space_id, period_id, status, total_amount)
		 VALUES (?, ?, ?, ?)`,
		settlement.SpaceID, settlement.PeriodID, settlement.Status, settlement.TotalAmount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	for name, amount := range settlement.Participants {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO settlement_participants (space_id, period_id, name, amount)
			 VALUES (?, ?, ?, ?)`,
			settlement.SpaceID, settlement.PeriodID, name, amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert settlement participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
