// internal/reports/postgres.go
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jeorgesilva/lianes-library/internal/postgres"
)

const loanRowColumns = `
	t.transaction_id, t.book_id, t.person_id, t.loan_date, t.due_date,
	t.actual_return_date,
	b.title AS book_title,
	p.first_name || ' ' || p.last_name AS borrower_name
`

// pgStore runs the aggregation queries against Postgres.
type pgStore struct {
	db *postgres.DB
}

// NewPostgresStore creates the Postgres-backed reporting store.
func NewPostgresStore(db *postgres.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) Dashboard(ctx context.Context, ref time.Time) (DashboardStats, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM books WHERE status <> 'REMOVED')             AS total_books,
			(SELECT COUNT(*) FROM books WHERE status = 'AVAILABLE')            AS available_books,
			(SELECT COUNT(*) FROM books WHERE status = 'BORROWED')             AS borrowed_books,
			(SELECT COUNT(*) FROM transactions WHERE actual_return_date IS NULL) AS active_loans,
			(SELECT COUNT(*) FROM transactions
				WHERE actual_return_date IS NULL AND due_date < $1)            AS overdue_loans,
			(SELECT COUNT(*) FROM borrowers WHERE status = 'ACTIVE')           AS total_borrowers
	`
	var stats DashboardStats
	if err := s.db.GetContext(ctx, &stats, query, ref); err != nil {
		return DashboardStats{}, fmt.Errorf("dashboard stats: %w", err)
	}
	return stats, nil
}

func (s *pgStore) TopBooks(ctx context.Context, limit int) ([]BookRanking, error) {
	const query = `
		SELECT b.book_id, b.title, COUNT(t.transaction_id) AS times_borrowed
		FROM transactions t
		JOIN books b ON b.book_id = t.book_id
		GROUP BY b.book_id, b.title
		ORDER BY times_borrowed DESC, b.book_id ASC
		LIMIT $1
	`
	out := []BookRanking{}
	if err := s.db.SelectContext(ctx, &out, query, limit); err != nil {
		return nil, fmt.Errorf("most borrowed books: %w", err)
	}
	return out, nil
}

func (s *pgStore) TopBorrowers(ctx context.Context, limit int) ([]BorrowerRanking, error) {
	const query = `
		SELECT p.person_id, p.first_name || ' ' || p.last_name AS name,
		       COUNT(t.transaction_id) AS loans_count
		FROM transactions t
		JOIN borrowers p ON p.person_id = t.person_id
		GROUP BY p.person_id, name
		ORDER BY loans_count DESC, p.person_id ASC
		LIMIT $1
	`
	out := []BorrowerRanking{}
	if err := s.db.SelectContext(ctx, &out, query, limit); err != nil {
		return nil, fmt.Errorf("most active borrowers: %w", err)
	}
	return out, nil
}

func (s *pgStore) OpenLoansDueBefore(ctx context.Context, ref time.Time) ([]LoanRow, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions t
		JOIN books b ON b.book_id = t.book_id
		JOIN borrowers p ON p.person_id = t.person_id
		WHERE t.actual_return_date IS NULL AND t.due_date < $1
		ORDER BY t.due_date ASC
	`, loanRowColumns)

	out := []LoanRow{}
	if err := s.db.SelectContext(ctx, &out, query, ref); err != nil {
		return nil, fmt.Errorf("overdue loans: %w", err)
	}
	return out, nil
}

func (s *pgStore) LoansForBook(ctx context.Context, bookID int64) ([]LoanRow, error) {
	return s.loanHistory(ctx, "t.book_id", bookID)
}

func (s *pgStore) LoansForBorrower(ctx context.Context, personID int64) ([]LoanRow, error) {
	return s.loanHistory(ctx, "t.person_id", personID)
}

func (s *pgStore) loanHistory(ctx context.Context, column string, id int64) ([]LoanRow, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions t
		JOIN books b ON b.book_id = t.book_id
		JOIN borrowers p ON p.person_id = t.person_id
		WHERE %s = $1
		ORDER BY t.loan_date DESC, t.transaction_id DESC
	`, loanRowColumns, column)

	out := []LoanRow{}
	if err := s.db.SelectContext(ctx, &out, query, id); err != nil {
		return nil, fmt.Errorf("loan history: %w", err)
	}
	return out, nil
}
