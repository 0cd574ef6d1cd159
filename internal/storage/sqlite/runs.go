package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/loungeap/spaceops/internal/models"
)

// SaveJobRun persists the audit record of one invocation.
func (s *SQLiteStore) SaveJobRun(ctx context.Context, run *models.JobRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO job_runs (id, job, started_at, finished_at, summary)
		 VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Job, run.StartedAt, run.FinishedAt, string(run.Summary),
	)
	if err != nil {
		return fmt.Errorf("failed to insert job run: %w", err)
	}
	return nil
}

// ListJobRuns returns the most recent run records, newest first.
func (s *SQLiteStore) ListJobRuns(ctx context.Context, limit int) ([]models.JobRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, job, started_at, finished_at, summary
		 FROM job_runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job runs: %w", err)
	}
	defer rows.Close()

	var runs []models.JobRun
	for rows.Next() {
		var (
			run     models.JobRun
			summary string
		)
		if err := rows.Scan(&run.ID, &run.Job, &run.StartedAt, &run.FinishedAt, &summary); err != nil {
			return nil, fmt.Errorf("failed to scan job run: %w", err)
		}
		run.Summary = []byte(summary)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job runs: %w", err)
	}

	return runs, nil
}
