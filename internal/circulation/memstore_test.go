package circulation

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jeorgesilva/lianes-library/internal/apperr"
	"github.com/jeorgesilva/lianes-library/internal/borrowers"
	"github.com/jeorgesilva/lianes-library/internal/catalog"
)

func noopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer("test")
}

// memState is the in-memory database backing memStore.
type memState struct {
	books      map[int64]*catalog.Book
	people     map[int64]*borrowers.Borrower
	loans      map[int64]*Loan
	nextLoanID int64
}

func newMemState() *memState {
	return &memState{
		books:      map[int64]*catalog.Book{},
		people:     map[int64]*borrowers.Borrower{},
		loans:      map[int64]*Loan{},
		nextLoanID: 1,
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	c.nextLoanID = s.nextLoanID
	for id, b := range s.books {
		copied := *b
		c.books[id] = &copied
	}
	for id, p := range s.people {
		copied := *p
		c.people[id] = &copied
	}
	for id, l := range s.loans {
		copied := *l
		if l.ActualReturnDate != nil {
			rd := *l.ActualReturnDate
			copied.ActualReturnDate = &rd
		}
		c.loans[id] = &copied
	}
	return c
}

func (s *memState) openLoans(bookID int64) []*Loan {
	var out []*Loan
	for _, l := range s.loans {
		if l.BookID == bookID && l.Open() {
			out = append(out, l)
		}
	}
	return out
}

// memStore implements Store with snapshot-restore rollback, mirroring the
// all-or-nothing behavior of the Postgres transaction scope.
type memStore struct {
	state *memState

	failSetBookStatus bool
}

func newMemStore() *memStore {
	return &memStore{state: newMemState()}
}

func (m *memStore) addBook(id int64, title string, status catalog.Status) {
	m.state.books[id] = &catalog.Book{ID: id, Title: title, Author: "A", Status: status}
}

func (m *memStore) addBorrower(id int64, first, last string, status borrowers.Status) {
	m.state.people[id] = &borrowers.Borrower{ID: id, FirstName: first, LastName: last, Status: status}
}

func (m *memStore) Within(_ context.Context, fn func(tx Tx) error) error {
	snapshot := m.state.clone()
	if err := fn(&memTx{store: m}); err != nil {
		m.state = snapshot
		return err
	}
	return nil
}

type memTx struct {
	store *memStore
}

func (t *memTx) BookForUpdate(_ context.Context, bookID int64) (*catalog.Book, error) {
	b, ok := t.store.state.books[bookID]
	if !ok {
		return nil, apperr.NotFoundf("book id %d not found", bookID)
	}
	copied := *b
	return &copied, nil
}

func (t *memTx) BorrowerByID(_ context.Context, personID int64) (*borrowers.Borrower, error) {
	p, ok := t.store.state.people[personID]
	if !ok {
		return nil, apperr.NotFoundf("borrower id %d not found", personID)
	}
	copied := *p
	return &copied, nil
}

func (t *memTx) InsertLoan(_ context.Context, loan *Loan) error {
	loan.ID = t.store.state.nextLoanID
	t.store.state.nextLoanID++
	loan.CreatedAt = time.Now()
	copied := *loan
	t.store.state.loans[loan.ID] = &copied
	return nil
}

func (t *memTx) SetBookStatus(_ context.Context, bookID int64, status catalog.Status) error {
	if t.store.failSetBookStatus {
		return apperr.Storage("set book status", fmt.Errorf("injected failure"))
	}
	b, ok := t.store.state.books[bookID]
	if !ok {
		return apperr.NotFoundf("book id %d not found", bookID)
	}
	b.Status = status
	return nil
}

func (t *memTx) LoanDetailForUpdate(_ context.Context, transactionID int64) (*LoanDetail, error) {
	l, ok := t.store.state.loans[transactionID]
	if !ok {
		return nil, apperr.NotFoundf("loan id %d not found", transactionID)
	}
	return t.detail(l), nil
}

func (t *memTx) OpenLoanForBook(_ context.Context, ref BookRef) (*LoanDetail, error) {
	var candidates []*Loan
	for _, l := range t.store.state.loans {
		if !l.Open() {
			continue
		}
		book := t.store.state.books[l.BookID]
		switch {
		case ref.ID != 0 && l.BookID == ref.ID:
			candidates = append(candidates, l)
		case ref.ID == 0 && book != nil &&
			strings.Contains(strings.ToLower(book.Title), strings.ToLower(ref.Title)):
			candidates = append(candidates, l)
		}
	}
	if len(candidates) == 0 {
		if ref.ID != 0 {
			return nil, apperr.NotFoundf("no open loan for book id %d", ref.ID)
		}
		return nil, apperr.NotFoundf("no open loan for book title %q", ref.Title)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].LoanDate.Equal(candidates[j].LoanDate) {
			return candidates[i].LoanDate.After(candidates[j].LoanDate)
		}
		return candidates[i].ID > candidates[j].ID
	})
	return t.detail(candidates[0]), nil
}

func (t *memTx) CloseLoan(_ context.Context, transactionID int64, returnDate time.Time) error {
	l, ok := t.store.state.loans[transactionID]
	if !ok {
		return apperr.NotFoundf("loan id %d not found", transactionID)
	}
	if !l.Open() {
		return apperr.Conflictf("loan id %d is already closed", transactionID)
	}
	rd := returnDate
	l.ActualReturnDate = &rd
	return nil
}

func (t *memTx) detail(l *Loan) *LoanDetail {
	copied := *l
	if l.ActualReturnDate != nil {
		rd := *l.ActualReturnDate
		copied.ActualReturnDate = &rd
	}
	d := &LoanDetail{Loan: copied}
	if b, ok := t.store.state.books[l.BookID]; ok {
		d.BookTitle = b.Title
	}
	if p, ok := t.store.state.people[l.PersonID]; ok {
		d.BorrowerName = p.DisplayName()
	}
	return d
}
