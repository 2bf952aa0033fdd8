// internal/reports/domain.go
package reports

import "time"

// DashboardStats is the summary shown on the library dashboard.
type DashboardStats struct {
	TotalBooks     int `json:"total_books" db:"total_books"`
	AvailableBooks int `json:"available_books" db:"available_books"`
	BorrowedBooks  int `json:"borrowed_books" db:"borrowed_books"`
	ActiveLoans    int `json:"active_loans" db:"active_loans"`
	OverdueLoans   int `json:"overdue_loans" db:"overdue_loans"`
	TotalBorrowers int `json:"total_borrowers" db:"total_borrowers"`
}

// BookRanking is one row of the most-borrowed-books report.
type BookRanking struct {
	BookID        int64  `json:"book_id" db:"book_id"`
	Title         string `json:"title" db:"title"`
	TimesBorrowed int    `json:"times_borrowed" db:"times_borrowed"`
}

// BorrowerRanking is one row of the most-active-borrowers report.
type BorrowerRanking struct {
	PersonID   int64  `json:"person_id" db:"person_id"`
	Name       string `json:"name" db:"name"`
	LoansCount int    `json:"loans_count" db:"loans_count"`
}

// History row tags.
const (
	TagActive         = "active"
	TagReturnedLate   = "returned_late"
	TagReturnedOnTime = "returned_on_time"
)

// LoanRow is a raw loan joined with display names, before tagging.
type LoanRow struct {
	LoanID           int64      `db:"transaction_id"`
	BookID           int64      `db:"book_id"`
	PersonID         int64      `db:"person_id"`
	BookTitle        string     `db:"book_title"`
	BorrowerName     string     `db:"borrower_name"`
	LoanDate         time.Time  `db:"loan_date"`
	DueDate          time.Time  `db:"due_date"`
	ActualReturnDate *time.Time `db:"actual_return_date"`
}

// HistoryEntry is a loan row tagged for reporting.
type HistoryEntry struct {
	LoanID           int64      `json:"transaction_id"`
	BookID           int64      `json:"book_id"`
	PersonID         int64      `json:"person_id"`
	BookTitle        string     `json:"book_title"`
	BorrowerName     string     `json:"borrower_name"`
	LoanDate         time.Time  `json:"loan_date"`
	DueDate          time.Time  `json:"due_date"`
	ActualReturnDate *time.Time `json:"actual_return_date,omitempty"`
	Status           string     `json:"status"`
	DaysOverdue      int        `json:"days_overdue"`
}

// DefaultRankingLimit applies when a ranking request does not set one.
const DefaultRankingLimit = 10
