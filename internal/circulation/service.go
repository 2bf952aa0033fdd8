// internal/circulation/service.go
package circulation

import (
	"context"
	"time"

	"github.com/jeorgesilva/lianes-library/internal/borrowers"
	"github.com/jeorgesilva/lianes-library/internal/catalog"
)

// Service defines the interface for the loan lifecycle manager.
type Service interface {
	CreateLoan(ctx context.Context, req CheckoutRequest) (*LoanDetail, error)
	ProcessReturn(ctx context.Context, transactionID int64, returnDate *time.Time) (*ReturnReceipt, error)
	ProcessReturnByBook(ctx context.Context, ref BookRef, returnDate *time.Time) (*ReturnReceipt, error)
}

// Store scopes a transaction around lifecycle transitions. Within must
// commit when fn returns nil and roll back every write when it does not.
type Store interface {
	Within(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the statement surface available inside one transaction. Book reads
// on the transition paths take a row lock so concurrent checkouts of the
// same book serialize.
type Tx interface {
	BookForUpdate(ctx context.Context, bookID int64) (*catalog.Book, error)
	BorrowerByID(ctx context.Context, personID int64) (*borrowers.Borrower, error)
	InsertLoan(ctx context.Context, loan *Loan) error
	SetBookStatus(ctx context.Context, bookID int64, status catalog.Status) error
	LoanDetailForUpdate(ctx context.Context, transactionID int64) (*LoanDetail, error)
	OpenLoanForBook(ctx context.Context, ref BookRef) (*LoanDetail, error)
	CloseLoan(ctx context.Context, transactionID int64, returnDate time.Time) error
}
