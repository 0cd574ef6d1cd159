package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// IMPORTANT: spaces must be created first; every other table hangs off
// it via foreign keys.
const schema = `
CREATE TABLE IF NOT EXISTS spaces (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS settlement_schedules (
    space_id TEXT PRIMARY KEY,
    enabled INTEGER NOT NULL DEFAULT 0,
    frequency TEXT NOT NULL,
    hour INTEGER NOT NULL,
    minute INTEGER NOT NULL,
    weekly_day INTEGER NOT NULL DEFAULT 0,
    monthly_day INTEGER NOT NULL DEFAULT 0,
    yearly_month INTEGER NOT NULL DEFAULT 0,
    yearly_day INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (space_id) REFERENCES spaces(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS email_settings (
    space_id TEXT PRIMARY KEY,
    enabled INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (space_id) REFERENCES spaces(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS email_recipients (
    space_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    address TEXT NOT NULL,
    PRIMARY KEY (space_id, position),
    FOREIGN KEY (space_id) REFERENCES email_settings(space_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS settlements (
    space_id TEXT NOT NULL,
    period_id TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'open',
    total_amount INTEGER NOT NULL DEFAULT 0,
    settled_at INTEGER,
    auto_settled INTEGER NOT NULL DEFAULT 0,
    settled_by_schedule TEXT,
    PRIMARY KEY (space_id, period_id),
    FOREIGN KEY (space_id) REFERENCES spaces(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS settlement_participants (
    space_id TEXT NOT NULL,
    period_id TEXT NOT NULL,
    name TEXT NOT NULL,
    amount INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (space_id, period_id, name),
    FOREIGN KEY (space_id, period_id) REFERENCES settlements(space_id, period_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    space_id TEXT NOT NULL,
    title TEXT NOT NULL,
    amount INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL,
    submitted_by TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    FOREIGN KEY (space_id) REFERENCES spaces(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS job_runs (
    id TEXT PRIMARY KEY,
    job TEXT NOT NULL,
    started_at INTEGER NOT NULL,
    finished_at INTEGER NOT NULL,
    summary TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_expenses_space_status ON expenses(space_id, status);
CREATE INDEX IF NOT EXISTS idx_settlements_space ON settlements(space_id);
CREATE INDEX IF NOT EXISTS idx_job_runs_started ON job_runs(job, started_at DESC);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
