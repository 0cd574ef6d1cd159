package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/loungeap/spaceops/internal/models"
	"github.com/loungeap/spaceops/internal/storage"
)

// ListSpaces enumerates every space, ordered by creation time.
func (s *SQLiteStore) ListSpaces(ctx context.Context) ([]models.Space, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM spaces ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list spaces: %w", err)
	}
	defer rows.Close()

	var spaces []models.Space
	for rows.Next() {
		var space models.Space
		if err := rows.Scan(&space.ID, &space.Name, &space.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan space: %w", err)
		}
		spaces = append(spaces, space)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate spaces: %w", err)
	}

	return spaces, nil
}

// CreateSpace persists a new space.
func (s *SQLiteStore) CreateSpace(ctx context.Context, space *models.Space) error {
	if space.CreatedAt == 0 {
		space.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO spaces (id, name, created_at) VALUES (?, ?, ?)",
		space.ID, space.Name, space.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert space: %w", err)
	}
	return nil
}

// GetSettlementSchedule returns a space's auto-close schedule.
// The record is validated here, at the storage boundary, so the
// schedule evaluator only ever sees well-formed configurations.
func (s *SQLiteStore) GetSettlementSchedule(ctx context.Context, spaceID string) (*models.SettlementSchedule, error) {
	var (
		schedule models.SettlementSchedule
		enabled  int
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT enabled, frequency, hour, minute, weekly_day, monthly_day, yearly_month, yearly_day
		 FROM settlement_schedules WHERE space_id = ?`,
		spaceID,
	).Scan(&enabled, &schedule.Frequency, &schedule.Hour, &schedule.Minute,
		&schedule.WeeklyDay, &schedule.MonthlyDay, &schedule.YearlyMonth, &schedule.YearlyDay)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement schedule: %w", err)
	}
	schedule.Enabled = enabled != 0

	if err := schedule.Validate(); err != nil {
		return nil, fmt.Errorf("settlement schedule for space %s: %w", spaceID, err)
	}

	return &schedule, nil
}

// PutSettlementSchedule creates or replaces a space's schedule.
func (s *SQLiteStore) PutSettlementSchedule(ctx context.Context, spaceID string, schedule models.SettlementSchedule) error {
	if err := schedule.Validate(); err != nil {
		return err
	}
	enabled := 0
	if schedule.Enabled {
		enabled = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settlement_schedules
		   (space_id, enabled, frequency, hour, minute, weekly_day, monthly_day, yearly_month, yearly_day)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(space_id) DO UPDATE SET
		   enabled = excluded.enabled,
		   frequency = excluded.frequency,
		   hour = excluded.hour,
		   minute = excluded.minute,
		   weekly_day = excluded.weekly_day,
		   monthly_day = excluded.monthly_day,
		   yearly_month = excluded.yearly_month,
		   yearly_day = excluded.yearly_day`,
		spaceID, enabled, schedule.Frequency, schedule.Hour, schedule.Minute,
		schedule.WeeklyDay, schedule.MonthlyDay, schedule.YearlyMonth, schedule.YearlyDay,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert settlement schedule: %w", err)
	}
	return nil
}

// GetEmailSettings returns a space's expense-reminder settings with
// recipients in their configured order.
func (s *SQLiteStore) GetEmailSettings(ctx context.Context, spaceID string) (*models.EmailSettings, error) {
	var enabled int
	err := s.db.QueryRowContext(ctx,
		"SELECT enabled FROM email_settings WHERE space_id = ?",
		spaceID,
	).Scan(&enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get email settings: %w", err)
	}

	settings := &models.EmailSettings{Enabled: enabled != 0}

	rows, err := s.db.QueryContext(ctx,
		"SELECT address FROM email_recipients WHERE space_id = ? ORDER BY position",
		spaceID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get email recipients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var address string
		if err := rows.Scan(&address); err != nil {
			return nil, fmt.Errorf("failed to scan email recipient: %w", err)
		}
		settings.Recipients = append(settings.Recipients, address)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate email recipients: %w", err)
	}

	return settings, nil
}

// PutEmailSettings creates or replaces a space's reminder settings,
// including the full recipient list.
func (s *SQLiteStore) PutEmailSettings(ctx context.Context, spaceID string, settings models.EmailSettings) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	enabled := 0
	if settings.Enabled {
		enabled = 1
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO email_settings (space_id, enabled) VALUES (?, ?)
		 ON CONFLICT(space_id) DO UPDATE SET enabled = excluded.enabled`,
		spaceID, enabled,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert email settings: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM email_recipients WHERE space_id = ?", spaceID); err != nil {
		return fmt.Errorf("failed to clear email recipients: %w", err)
	}
	for i, address := range settings.Recipients {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO email_recipients (space_id, position, address) VALUES (?, ?, ?)",
			spaceID, i, address,
		)
		if err != nil {
			return fmt.Errorf("failed to insert email recipient: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
