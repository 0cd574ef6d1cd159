package models

// ExpenseStatus is the approval state of a shared expense.
type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "pending"
	ExpenseApproved ExpenseStatus = "approved"
	ExpenseRejected ExpenseStatus = "rejected"
)

// Expense is a shared operating expense submitted for manager
// approval. The reminder job only counts pending expenses per space;
// it never inspects or mutates individual records.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// SpaceID is the space the expense belongs to.
	SpaceID string

	// Title is a short human-readable description.
	Title string

	// Amount is the expense amount in KRW.
	Amount int64

	// Status is the approval state.
	Status ExpenseStatus

	// SubmittedBy is the name of the member who filed the expense.
	SubmittedBy string

	// CreatedAt is the Unix timestamp when the expense was filed.
	CreatedAt int64
}
