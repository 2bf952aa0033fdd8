package circulation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeorgesilva/lianes-library/internal/apperr"
	"github.com/jeorgesilva/lianes-library/internal/borrowers"
	"github.com/jeorgesilva/lianes-library/internal/catalog"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestService(store *memStore) *service {
	return &service{
		store:          store,
		tracer:         noopTracer(),
		loanPeriodDays: DefaultLoanPeriodDays,
		now:            func() time.Time { return date(2024, time.March, 1) },
	}
}

func seedAvailable(store *memStore) {
	store.addBook(1, "Pride and Prejudice", catalog.StatusAvailable)
	store.addBorrower(1, "Liane", "Silva", borrowers.StatusActive)
}

func TestCreateLoanHappyPath(t *testing.T) {
	store := newMemStore()
	seedAvailable(store)
	svc := newTestService(store)

	detail, err := svc.CreateLoan(context.Background(), CheckoutRequest{BookID: 1, PersonID: 1})
	require.NoError(t, err)

	assert.Equal(t, "Pride and Prejudice", detail.BookTitle)
	assert.Equal(t, "Liane Silva", detail.BorrowerName)
	assert.Equal(t, date(2024, time.March, 1), detail.LoanDate)
	assert.Equal(t, date(2024, time.March, 15), detail.DueDate)
	assert.True(t, detail.Open())
	assert.Equal(t, catalog.StatusBorrowed, store.state.books[1].Status)
}

func TestCreateLoanTwiceConflicts(t *testing.T) {
	store := newMemStore()
	seedAvailable(store)
	store.addBorrower(2, "Jorge", "Souza", borrowers.StatusActive)
	svc := newTestService(store)

	_, err := svc.CreateLoan(context.Background(), CheckoutRequest{BookID: 1, PersonID: 1})
	require.NoError(t, err)

	_, err = svc.CreateLoan(context.Background(), CheckoutRequest{BookID: 1, PersonID: 2})
	assert.True(t, apperr.IsConflict(err))

	assert.Equal(t, catalog.StatusBorrowed, store.state.books[1].Status)
	assert.Len(t, store.state.openLoans(1), 1)
}

func TestCreateLoanMissingBookRollsBack(t *testing.T) {
	store := newMemStore()
	store.addBorrower(1, "Liane", "Silva", borrowers.StatusActive)
	svc := newTestService(store)

	_, err := svc.CreateLoan(context.Background(), CheckoutRequest{BookID: 99, PersonID: 1})
	assert.True(t, apperr.IsNotFound(err))
	assert.Empty(t, store.state.loans)
}

func TestCreateLoanMissingBorrowerRollsBack(t *testing.T) {
	store := newMemStore()
	store.addBook(1, "Dune", catalog.StatusAvailable)
	svc := newTestService(store)

	_, err := svc.CreateLoan(context.Background(), CheckoutRequest{BookID: 1, PersonID: 99})
	assert.True(t, apperr.IsNotFound(err))
	assert.Empty(t, store.state.loans)
	assert.Equal(t, catalog.StatusAvailable, store.state.books[1].Status)
}

func TestCreateLoanInactiveBorrowerConflicts(t *testing.T) {
	store := newMemStore()
	store.addBook(1, "Dune", catalog.StatusAvailable)
	store.addBorrower(1, "Liane", "Silva", borrowers.StatusInactive)
	svc := newTestService(store)

	_, err := svc.CreateLoan(context.Background(), CheckoutRequest{BookID: 1, PersonID: 1})
	assert.True(t, apperr.IsConflict(err))
	assert.Empty(t, store.state.loans)
}

func TestCreateLoanStorageFailureRollsBackEverything(t *testing.T) {
	store := newMemStore()
	seedAvailable(store)
	store.failSetBookStatus = true
	svc := newTestService(store)

	_, err := svc.CreateLoan(context.Background(), CheckoutRequest{BookID: 1, PersonID: 1})
	assert.True(t, apperr.IsStorage(err))

	// The loan insert succeeded inside the transaction and must be gone.
	assert.Empty(t, store.state.loans)
	assert.Equal(t, catalog.StatusAvailable, store.state.books[1].Status)
}

func TestCreateLoanRejectsDueBeforeLoanDate(t *testing.T) {
	store := newMemStore()
	seedAvailable(store)
	svc := newTestService(store)

	loanDate := date(2024, time.March, 10)
	dueDate := date(2024, time.March, 1)
	_, err := svc.CreateLoan(context.Background(), CheckoutRequest{
		BookID: 1, PersonID: 1, LoanDate: &loanDate, DueDate: &dueDate,
	})
	assert.True(t, apperr.IsValidation(err))
}

func TestProcessReturnLateScenario(t *testing.T) {
	store := newMemStore()
	seedAvailable(store)
	svc := newTestService(store)

	loanDate := date(2024, time.January, 1)
	dueDate := date(2024, time.January, 15)
	detail, err := svc.CreateLoan(context.Background(), CheckoutRequest{
		BookID: 1, PersonID: 1, LoanDate: &loanDate, DueDate: &dueDate,
	})
	require.NoError(t, err)

	returnDate := date(2024, time.January, 20)
	receipt, err := svc.ProcessReturn(context.Background(), detail.ID, &returnDate)
	require.NoError(t, err)

	assert.True(t, receipt.IsLate)
	assert.Equal(t, 5, receipt.DaysLate)
	require.NotNil(t, receipt.Loan.ActualReturnDate)
	assert.Equal(t, returnDate, *receipt.Loan.ActualReturnDate)
	assert.Equal(t, catalog.StatusAvailable, store.state.books[1].Status)
	assert.Equal(t, returnDate, *store.state.loans[detail.ID].ActualReturnDate)
}

func TestProcessReturnOnTime(t *testing.T) {
	store := newMemStore()
	seedAvailable(store)
	svc := newTestService(store)

	detail, err := svc.CreateLoan(context.Background(), CheckoutRequest{BookID: 1, PersonID: 1})
	require.NoError(t, err)

	returnDate := detail.DueDate
	receipt, err := svc.ProcessReturn(context.Background(), detail.ID, &returnDate)
	require.NoError(t, err)
	assert.False(t, receipt.IsLate)
	assert.Zero(t, receipt.DaysLate)
}

func TestProcessReturnTwiceConflicts(t *testing.T) {
	store := newMemStore()
	seedAvailable(store)
	svc := newTestService(store)

	detail, err := svc.CreateLoan(context.Background(), CheckoutRequest{BookID: 1, PersonID: 1})
	require.NoError(t, err)

	first := date(2024, time.March, 5)
	_, err = svc.ProcessReturn(context.Background(), detail.ID, &first)
	require.NoError(t, err)

	second := date(2024, time.March, 9)
	_, err = svc.ProcessReturn(context.Background(), detail.ID, &second)
	assert.True(t, apperr.IsConflict(err))

	// The first return date must survive the failed second attempt.
	assert.Equal(t, first, *store.state.loans[detail.ID].ActualReturnDate)
}

func TestProcessReturnUnknownLoan(t *testing.T) {
	svc := newTestService(newMemStore())

	_, err := svc.ProcessReturn(context.Background(), 404, nil)
	assert.True(t, apperr.IsNotFound(err))
}

func TestProcessReturnRejectsReturnBeforeLoanDate(t *testing.T) {
	store := newMemStore()
	seedAvailable(store)
	svc := newTestService(store)

	loanDate := date(2024, time.March, 1)
	detail, err := svc.CreateLoan(context.Background(), CheckoutRequest{BookID: 1, PersonID: 1, LoanDate: &loanDate})
	require.NoError(t, err)

	early := date(2024, time.February, 20)
	_, err = svc.ProcessReturn(context.Background(), detail.ID, &early)
	assert.True(t, apperr.IsValidation(err))
	assert.True(t, store.state.loans[detail.ID].Open())
}

func TestProcessReturnByBookTitleResolvesMostRecentOpenLoan(t *testing.T) {
	store := newMemStore()
	store.addBook(1, "The Hobbit", catalog.StatusAvailable)
	store.addBook(2, "The Hobbit Companion", catalog.StatusAvailable)
	store.addBorrower(1, "Liane", "Silva", borrowers.StatusActive)
	svc := newTestService(store)

	older := date(2024, time.January, 2)
	_, err := svc.CreateLoan(context.Background(), CheckoutRequest{BookID: 1, PersonID: 1, LoanDate: &older})
	require.NoError(t, err)

	newer := date(2024, time.February, 2)
	recent, err := svc.CreateLoan(context.Background(), CheckoutRequest{BookID: 2, PersonID: 1, LoanDate: &newer})
	require.NoError(t, err)

	receipt, err := svc.ProcessReturnByBook(context.Background(), BookRef{Title: "hobbit"}, nil)
	require.NoError(t, err)
	assert.Equal(t, recent.ID, receipt.Loan.ID)
}

func TestProcessReturnByBookIDWithoutOpenLoan(t *testing.T) {
	store := newMemStore()
	store.addBook(1, "Dune", catalog.StatusAvailable)
	svc := newTestService(store)

	_, err := svc.ProcessReturnByBook(context.Background(), BookRef{ID: 1}, nil)
	assert.True(t, apperr.IsNotFound(err))
}

func TestProcessReturnByBookRequiresReference(t *testing.T) {
	svc := newTestService(newMemStore())

	_, err := svc.ProcessReturnByBook(context.Background(), BookRef{}, nil)
	assert.True(t, apperr.IsValidation(err))
}

func TestBookIsBorrowableAgainAfterReturn(t *testing.T) {
	store := newMemStore()
	seedAvailable(store)
	svc := newTestService(store)

	first, err := svc.CreateLoan(context.Background(), CheckoutRequest{BookID: 1, PersonID: 1})
	require.NoError(t, err)

	_, err = svc.ProcessReturn(context.Background(), first.ID, nil)
	require.NoError(t, err)

	second, err := svc.CreateLoan(context.Background(), CheckoutRequest{BookID: 1, PersonID: 1})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, store.state.openLoans(1), 1)
}
