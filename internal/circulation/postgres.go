// internal/circulation/postgres.go
package circulation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jeorgesilva/lianes-library/internal/apperr"
	"github.com/jeorgesilva/lianes-library/internal/borrowers"
	"github.com/jeorgesilva/lianes-library/internal/catalog"
	"github.com/jeorgesilva/lianes-library/internal/postgres"
)

const loanDetailColumns = `
	t.transaction_id, t.book_id, t.person_id, t.loan_date, t.due_date,
	t.actual_return_date, t.created_at,
	b.title AS book_title,
	p.first_name || ' ' || p.last_name AS borrower_name
`

// pgStore runs lifecycle transitions against Postgres.
type pgStore struct {
	db *postgres.DB
}

// NewPostgresStore creates the Postgres-backed circulation store.
func NewPostgresStore(db *postgres.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) Within(ctx context.Context, fn func(tx Tx) error) error {
	return s.db.WithinTx(ctx, func(tx *sqlx.Tx) error {
		return fn(&pgTx{tx: tx})
	})
}

// pgTx implements Tx over one open transaction.
type pgTx struct {
	tx *sqlx.Tx
}

func (t *pgTx) BookForUpdate(ctx context.Context, bookID int64) (*catalog.Book, error) {
	const query = `
		SELECT book_id, title, author, isbn, genre, cost, status, created_at, updated_at
		FROM books
		WHERE book_id = $1
		FOR UPDATE
	`
	var b catalog.Book
	if err := t.tx.GetContext(ctx, &b, query, bookID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFoundf("book id %d not found", bookID)
		}
		return nil, apperr.Storage("lock book row", err)
	}
	return &b, nil
}

// BorrowerByID takes a share lock on the borrower row so a concurrent
// deactivation cannot commit between the status check and the loan insert.
func (t *pgTx) BorrowerByID(ctx context.Context, personID int64) (*borrowers.Borrower, error) {
	const query = `
		SELECT person_id, first_name, last_name, email, phone, address,
		       relationship_type, status, created_at, updated_at
		FROM borrowers
		WHERE person_id = $1
		FOR SHARE
	`
	var b borrowers.Borrower
	if err := t.tx.GetContext(ctx, &b, query, personID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFoundf("borrower id %d not found", personID)
		}
		return nil, apperr.Storage("get borrower", err)
	}
	return &b, nil
}

func (t *pgTx) InsertLoan(ctx context.Context, loan *Loan) error {
	const query = `
		INSERT INTO transactions (book_id, person_id, loan_date, due_date)
		VALUES ($1, $2, $3, $4)
		RETURNING transaction_id, created_at
	`
	err := t.tx.QueryRowxContext(ctx, query, loan.BookID, loan.PersonID, loan.LoanDate, loan.DueDate).
		Scan(&loan.ID, &loan.CreatedAt)
	if err != nil {
		return apperr.Storage("insert loan", err)
	}
	return nil
}

func (t *pgTx) SetBookStatus(ctx context.Context, bookID int64, status catalog.Status) error {
	const query = `UPDATE books SET status = $1, updated_at = NOW() WHERE book_id = $2`
	if _, err := t.tx.ExecContext(ctx, query, status, bookID); err != nil {
		return apperr.Storage("set book status", err)
	}
	return nil
}

func (t *pgTx) LoanDetailForUpdate(ctx context.Context, transactionID int64) (*LoanDetail, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions t
		JOIN books b ON b.book_id = t.book_id
		JOIN borrowers p ON p.person_id = t.person_id
		WHERE t.transaction_id = $1
		FOR UPDATE OF t
	`, loanDetailColumns)

	var d LoanDetail
	if err := t.tx.GetContext(ctx, &d, query, transactionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFoundf("loan id %d not found", transactionID)
		}
		return nil, apperr.Storage("lock loan row", err)
	}
	return &d, nil
}

// OpenLoanForBook resolves the most recent open loan by loan_date, then
// transaction_id, for an exact book id or a partial title match.
func (t *pgTx) OpenLoanForBook(ctx context.Context, ref BookRef) (*LoanDetail, error) {
	where := `b.book_id = $1`
	arg := any(ref.ID)
	label := fmt.Sprintf("book id %d", ref.ID)
	if ref.ID == 0 {
		where = `b.title ILIKE $1`
		arg = "%" + ref.Title + "%"
		label = fmt.Sprintf("book title %q", ref.Title)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions t
		JOIN books b ON b.book_id = t.book_id
		JOIN borrowers p ON p.person_id = t.person_id
		WHERE t.actual_return_date IS NULL AND %s
		ORDER BY t.loan_date DESC, t.transaction_id DESC
		LIMIT 1
		FOR UPDATE OF t
	`, loanDetailColumns, where)

	var d LoanDetail
	if err := t.tx.GetContext(ctx, &d, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFoundf("no open loan for %s", label)
		}
		return nil, apperr.Storage("resolve open loan", err)
	}
	return &d, nil
}

func (t *pgTx) CloseLoan(ctx context.Context, transactionID int64, returnDate time.Time) error {
	const query = `
		UPDATE transactions
		SET actual_return_date = $1
		WHERE transaction_id = $2 AND actual_return_date IS NULL
	`
	res, err := t.tx.ExecContext(ctx, query, returnDate, transactionID)
	if err != nil {
		return apperr.Storage("close loan", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage("read rows affected", err)
	}
	if n == 0 {
		return apperr.Conflictf("loan id %d is already closed", transactionID)
	}
	return nil
}
