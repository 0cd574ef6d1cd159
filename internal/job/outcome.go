package job

// Status classifies one space's outcome within a run. Most statuses
// are expected steady states, not faults; only StatusError marks an
// unanticipated failure.
type Status string

// Settlement auto-close outcomes.
const (
	StatusSettled        Status = "settled"
	StatusAlreadySettled Status = "already_settled"
	StatusNoData         Status = "no_data"
	StatusNoSettings     Status = "no_settings"
	StatusDisabled       Status = "disabled"
	StatusNotTime        Status = "not_time"
	StatusError          Status = "error"
)

// Pending-expense reminder outcomes.
const (
	StatusSent            Status = "sent"
	StatusNoPending       Status = "no_pending"
	StatusEmailDisabled   Status = "email_disabled"
	StatusNoEmailSettings Status = "no_email_settings"
	StatusEmailFailed     Status = "email_failed"
)

// Outcome records what happened to one space during a run. Failures
// are carried as values; nothing propagates past the per-space
// boundary, so one space's fault never aborts its siblings.
type Outcome struct {
	SpaceID   string `json:"spaceId"`
	SpaceName string `json:"spaceName"`
	Status    Status `json:"status"`
	Message   string `json:"message"`

	// Settlement close details, present on settled outcomes.
	PeriodID     string `json:"periodId,omitempty"`
	Participants int    `json:"participants,omitempty"`
	TotalAmount  int64  `json:"totalAmount,omitempty"`
	Schedule     string `json:"schedule,omitempty"`

	// Reminder details, present on sent/email_failed outcomes.
	PendingCount int      `json:"pendingCount,omitempty"`
	Recipients   []string `json:"recipients,omitempty"`
}
