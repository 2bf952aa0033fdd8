// internal/circulation/domain.go
package circulation

import "time"

// Loan is one borrowing transaction. Loans are append-only history: they are
// never deleted, only closed by setting the return date exactly once.
type Loan struct {
	ID               int64      `json:"transaction_id" db:"transaction_id"`
	BookID           int64      `json:"book_id" db:"book_id"`
	PersonID         int64      `json:"person_id" db:"person_id"`
	LoanDate         time.Time  `json:"loan_date" db:"loan_date"`
	DueDate          time.Time  `json:"due_date" db:"due_date"`
	ActualReturnDate *time.Time `json:"actual_return_date,omitempty" db:"actual_return_date"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
}

// Open reports whether the loan has not been returned yet.
func (l Loan) Open() bool { return l.ActualReturnDate == nil }

// LoanDetail is a loan denormalized with book title and borrower name.
type LoanDetail struct {
	Loan
	BookTitle    string `json:"book_title" db:"book_title"`
	BorrowerName string `json:"borrower_name" db:"borrower_name"`
}

// CheckoutRequest describes a loan to create. Nil dates take defaults:
// LoanDate today, DueDate LoanDate plus the configured loan period.
type CheckoutRequest struct {
	BookID   int64
	PersonID int64
	LoanDate *time.Time
	DueDate  *time.Time
}

// BookRef identifies a book either by id or by a partial title match.
type BookRef struct {
	ID    int64
	Title string
}

// ReturnReceipt reports the outcome of a return. Lateness is derived for the
// response only and never persisted.
type ReturnReceipt struct {
	Loan       LoanDetail `json:"loan"`
	ReturnDate time.Time  `json:"return_date"`
	IsLate     bool       `json:"is_late"`
	DaysLate   int        `json:"days_late"`
}

// DefaultLoanPeriodDays applies when the service is built without an
// explicit loan period.
const DefaultLoanPeriodDays = 14

// dateOnly truncates to a calendar date in UTC so day arithmetic is exact.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
