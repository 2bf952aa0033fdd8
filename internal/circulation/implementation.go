// internal/circulation/implementation.go
package circulation

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jeorgesilva/lianes-library/internal/apperr"
	"github.com/jeorgesilva/lianes-library/internal/borrowers"
	"github.com/jeorgesilva/lianes-library/internal/catalog"
)

// service implements the Service interface.
type service struct {
	store          Store
	tracer         trace.Tracer
	loanPeriodDays int
	now            func() time.Time
}

// NewService creates a new lifecycle manager. loanPeriodDays <= 0 falls back
// to DefaultLoanPeriodDays.
func NewService(store Store, loanPeriodDays int) Service {
	if loanPeriodDays <= 0 {
		loanPeriodDays = DefaultLoanPeriodDays
	}
	return &service{
		store:          store,
		tracer:         otel.Tracer("lianes-library/circulation"),
		loanPeriodDays: loanPeriodDays,
		now:            time.Now,
	}
}

// CreateLoan moves a book from AVAILABLE to BORROWED and records the open
// loan, all inside one transaction.
func (s *service) CreateLoan(ctx context.Context, req CheckoutRequest) (*LoanDetail, error) {
	ctx, span := s.tracer.Start(ctx, "circulation.create_loan",
		trace.WithAttributes(
			attribute.Int64("book.id", req.BookID),
			attribute.Int64("borrower.id", req.PersonID),
		),
	)
	defer span.End()

	loanDate := dateOnly(s.now())
	if req.LoanDate != nil {
		loanDate = dateOnly(*req.LoanDate)
	}
	dueDate := loanDate.AddDate(0, 0, s.loanPeriodDays)
	if req.DueDate != nil {
		dueDate = dateOnly(*req.DueDate)
	}
	if dueDate.Before(loanDate) {
		return nil, spanErr(span, apperr.Validationf("due date %s is before loan date %s",
			dueDate.Format(time.DateOnly), loanDate.Format(time.DateOnly)))
	}

	var detail *LoanDetail
	err := s.store.Within(ctx, func(tx Tx) error {
		book, err := tx.BookForUpdate(ctx, req.BookID)
		if err != nil {
			return err
		}
		if book.Status != catalog.StatusAvailable {
			return apperr.Conflictf("book id %d is not AVAILABLE (status %s)", book.ID, book.Status)
		}

		person, err := tx.BorrowerByID(ctx, req.PersonID)
		if err != nil {
			return err
		}
		if person.Status != borrowers.StatusActive {
			return apperr.Conflictf("borrower id %d is not ACTIVE", person.ID)
		}

		loan := &Loan{
			BookID:   book.ID,
			PersonID: person.ID,
			LoanDate: loanDate,
			DueDate:  dueDate,
		}
		if err := tx.InsertLoan(ctx, loan); err != nil {
			return err
		}
		if err := tx.SetBookStatus(ctx, book.ID, catalog.StatusBorrowed); err != nil {
			return err
		}

		detail = &LoanDetail{Loan: *loan, BookTitle: book.Title, BorrowerName: person.DisplayName()}
		return nil
	})
	if err != nil {
		return nil, spanErr(span, err)
	}

	span.SetAttributes(attribute.Int64("loan.id", detail.ID))
	return detail, nil
}

// ProcessReturn closes an open loan and makes the book AVAILABLE again.
func (s *service) ProcessReturn(ctx context.Context, transactionID int64, returnDate *time.Time) (*ReturnReceipt, error) {
	ctx, span := s.tracer.Start(ctx, "circulation.process_return",
		trace.WithAttributes(attribute.Int64("loan.id", transactionID)),
	)
	defer span.End()

	var receipt *ReturnReceipt
	err := s.store.Within(ctx, func(tx Tx) error {
		detail, err := tx.LoanDetailForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		receipt, err = s.closeLoan(ctx, tx, detail, returnDate)
		return err
	})
	if err != nil {
		return nil, spanErr(span, err)
	}
	return receipt, nil
}

// ProcessReturnByBook resolves the most recent open loan for a book, by id
// or partial title, then performs the same return transition. This is a
// convenience on top of the loan-id path, not a separate primitive.
func (s *service) ProcessReturnByBook(ctx context.Context, ref BookRef, returnDate *time.Time) (*ReturnReceipt, error) {
	ctx, span := s.tracer.Start(ctx, "circulation.process_return_by_book",
		trace.WithAttributes(
			attribute.Int64("book.id", ref.ID),
			attribute.String("book.title", ref.Title),
		),
	)
	defer span.End()

	if ref.ID == 0 && ref.Title == "" {
		return nil, spanErr(span, apperr.Validationf("either book id or book title is required"))
	}

	var receipt *ReturnReceipt
	err := s.store.Within(ctx, func(tx Tx) error {
		detail, err := tx.OpenLoanForBook(ctx, ref)
		if err != nil {
			return err
		}
		receipt, err = s.closeLoan(ctx, tx, detail, returnDate)
		return err
	})
	if err != nil {
		return nil, spanErr(span, err)
	}
	return receipt, nil
}

// closeLoan performs the shared return transition on an already-loaded loan.
func (s *service) closeLoan(ctx context.Context, tx Tx, detail *LoanDetail, returnDate *time.Time) (*ReturnReceipt, error) {
	if !detail.Open() {
		return nil, apperr.Conflictf("loan id %d was already returned on %s",
			detail.ID, detail.ActualReturnDate.Format(time.DateOnly))
	}

	returned := dateOnly(s.now())
	if returnDate != nil {
		returned = dateOnly(*returnDate)
	}
	if returned.Before(dateOnly(detail.LoanDate)) {
		return nil, apperr.Validationf("return date %s is before loan date %s",
			returned.Format(time.DateOnly), detail.LoanDate.Format(time.DateOnly))
	}

	if err := tx.CloseLoan(ctx, detail.ID, returned); err != nil {
		return nil, err
	}
	if err := tx.SetBookStatus(ctx, detail.BookID, catalog.StatusAvailable); err != nil {
		return nil, err
	}

	detail.ActualReturnDate = &returned

	daysLate := 0
	if due := dateOnly(detail.DueDate); returned.After(due) {
		daysLate = int(returned.Sub(due).Hours() / 24)
	}

	return &ReturnReceipt{
		Loan:       *detail,
		ReturnDate: returned,
		IsLate:     daysLate > 0,
		DaysLate:   daysLate,
	}, nil
}

func spanErr(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
