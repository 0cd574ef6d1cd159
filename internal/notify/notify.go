// Package notify sends reminder notifications through the external
// notification function. The service only composes and posts
// messages; rendering and actual delivery (email, alimtalk) happen on
// the other side of the HTTP boundary.
package notify

import "context"

// TypeExpenseReminder asks the notification function to render the
// pending-expense reminder template.
const TypeExpenseReminder = "expense_reminder"

// Recipients addresses one notification: To is the primary recipient,
// CC everyone else.
type Recipients struct {
	To string   `json:"to"`
	CC []string `json:"cc"`
}

// Message is the payload contract of the notification function.
type Message struct {
	Type         string     `json:"type"`
	SpaceName    string     `json:"spaceName"`
	PendingCount int        `json:"pendingCount"`
	Recipients   Recipients `json:"recipients"`
}

// Sender dispatches one notification. Implementations must treat any
// non-success response as an error; the caller decides whether the
// failure is fatal.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
