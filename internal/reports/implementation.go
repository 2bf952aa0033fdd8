// internal/reports/implementation.go
package reports

import (
	"context"
	"log"
	"time"
)

// service implements the Service interface.
type service struct {
	store Store
	now   func() time.Time
}

// NewService creates a new reporting service instance.
func NewService(store Store) Service {
	return &service{store: store, now: time.Now}
}

func (s *service) Dashboard(ctx context.Context) DashboardStats {
	stats, err := s.store.Dashboard(ctx, dateOnly(s.now()))
	if err != nil {
		log.Printf("reports: dashboard query failed, serving zeroed stats: %v", err)
		return DashboardStats{}
	}
	return stats
}

func (s *service) MostBorrowedBooks(ctx context.Context, limit int) []BookRanking {
	if limit <= 0 {
		limit = DefaultRankingLimit
	}
	out, err := s.store.TopBooks(ctx, limit)
	if err != nil {
		log.Printf("reports: most-borrowed query failed: %v", err)
		return []BookRanking{}
	}
	return out
}

func (s *service) MostActiveBorrowers(ctx context.Context, limit int) []BorrowerRanking {
	if limit <= 0 {
		limit = DefaultRankingLimit
	}
	out, err := s.store.TopBorrowers(ctx, limit)
	if err != nil {
		log.Printf("reports: most-active query failed: %v", err)
		return []BorrowerRanking{}
	}
	return out
}

func (s *service) OverdueLoans(ctx context.Context, ref *time.Time) []HistoryEntry {
	reference := dateOnly(s.now())
	if ref != nil {
		reference = dateOnly(*ref)
	}
	rows, err := s.store.OpenLoansDueBefore(ctx, reference)
	if err != nil {
		log.Printf("reports: overdue query failed: %v", err)
		return []HistoryEntry{}
	}
	return tagRows(rows, reference)
}

func (s *service) HistoryForBook(ctx context.Context, bookID int64) []HistoryEntry {
	rows, err := s.store.LoansForBook(ctx, bookID)
	if err != nil {
		log.Printf("reports: book history query failed: %v", err)
		return []HistoryEntry{}
	}
	return tagRows(rows, dateOnly(s.now()))
}

func (s *service) HistoryForBorrower(ctx context.Context, personID int64) []HistoryEntry {
	rows, err := s.store.LoansForBorrower(ctx, personID)
	if err != nil {
		log.Printf("reports: borrower history query failed: %v", err)
		return []HistoryEntry{}
	}
	return tagRows(rows, dateOnly(s.now()))
}

// tagRows classifies each loan against its due date. For open loans
// days_overdue is measured against ref; for closed loans against the
// actual return date.
func tagRows(rows []LoanRow, ref time.Time) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(rows))
	for _, r := range rows {
		entry := HistoryEntry{
			LoanID:           r.LoanID,
			BookID:           r.BookID,
			PersonID:         r.PersonID,
			BookTitle:        r.BookTitle,
			BorrowerName:     r.BorrowerName,
			LoanDate:         r.LoanDate,
			DueDate:          r.DueDate,
			ActualReturnDate: r.ActualReturnDate,
		}

		due := dateOnly(r.DueDate)
		switch {
		case r.ActualReturnDate == nil:
			entry.Status = TagActive
			entry.DaysOverdue = daysAfter(ref, due)
		case dateOnly(*r.ActualReturnDate).After(due):
			entry.Status = TagReturnedLate
			entry.DaysOverdue = daysAfter(dateOnly(*r.ActualReturnDate), due)
		default:
			entry.Status = TagReturnedOnTime
		}
		out = append(out, entry)
	}
	return out
}

func daysAfter(a, b time.Time) int {
	if !a.After(b) {
		return 0
	}
	return int(a.Sub(b).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
