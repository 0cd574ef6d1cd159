package models

// JobRun is the persisted audit record of one scheduler invocation.
// The summary is the same JSON document returned to the caller of the
// trigger endpoint, kept opaque here.
type JobRun struct {
	// ID is the unique identifier for the run (UUID format).
	ID string

	// Job names the invocation: "settlement-auto-close" or
	// "pending-expense-reminder".
	Job string

	// StartedAt and FinishedAt are Unix timestamps in milliseconds.
	StartedAt  int64
	FinishedAt int64

	// Summary is the JSON-encoded run report.
	Summary []byte
}
