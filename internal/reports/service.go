// internal/reports/service.go
package reports

import (
	"context"
	"time"
)

// Service defines the read-only reporting interface. Reports are advisory:
// on a storage fault every method surfaces an empty or zeroed result
// instead of an error.
type Service interface {
	Dashboard(ctx context.Context) DashboardStats
	MostBorrowedBooks(ctx context.Context, limit int) []BookRanking
	MostActiveBorrowers(ctx context.Context, limit int) []BorrowerRanking
	OverdueLoans(ctx context.Context, ref *time.Time) []HistoryEntry
	HistoryForBook(ctx context.Context, bookID int64) []HistoryEntry
	HistoryForBorrower(ctx context.Context, personID int64) []HistoryEntry
}

// Store is the aggregation-query surface over the base tables.
type Store interface {
	Dashboard(ctx context.Context, ref time.Time) (DashboardStats, error)
	TopBooks(ctx context.Context, limit int) ([]BookRanking, error)
	TopBorrowers(ctx context.Context, limit int) ([]BorrowerRanking, error)
	OpenLoansDueBefore(ctx context.Context, ref time.Time) ([]LoanRow, error)
	LoansForBook(ctx context.Context, bookID int64) ([]LoanRow, error)
	LoansForBorrower(ctx context.Context, personID int64) ([]LoanRow, error)
}
