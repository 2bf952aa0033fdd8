// internal/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/jeorgesilva/lianes-library/internal/apperr"
	"github.com/jeorgesilva/lianes-library/internal/postgres"
)

const booksTable = "books"

var bookColumns = []any{
	"book_id", "title", "author", "isbn", "genre", "cost", "status", "created_at", "updated_at",
}

// pgStore persists books in Postgres.
type pgStore struct {
	db *postgres.DB
}

// NewPostgresStore creates the Postgres-backed catalog store.
func NewPostgresStore(db *postgres.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) Insert(ctx context.Context, b *Book) error {
	const query = `
		INSERT INTO books (title, author, isbn, genre, cost, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING book_id, created_at, updated_at
	`
	err := s.db.GetContext(ctx, b, query, b.Title, b.Author, b.ISBN, b.Genre, b.Cost, b.Status)
	if err != nil {
		return apperr.Storage("insert book", err)
	}
	return nil
}

func (s *pgStore) List(ctx context.Context, f Filter) ([]Book, error) {
	stmt := goqu.Dialect(postgres.Dialect).
		From(booksTable).
		Select(bookColumns...).
		Order(goqu.I("book_id").Asc()).
		Limit(uint(f.Limit)).
		Prepared(true)

	exprs := make([]goqu.Expression, 0, 4)
	if f.Title != "" {
		exprs = append(exprs, goqu.I("title").ILike("%"+f.Title+"%"))
	}
	if f.Author != "" {
		exprs = append(exprs, goqu.I("author").ILike("%"+f.Author+"%"))
	}
	if f.Genre != "" {
		exprs = append(exprs, goqu.I("genre").Eq(f.Genre))
	}
	if f.Status != "" {
		exprs = append(exprs, goqu.I("status").Eq(string(f.Status)))
	}
	if len(exprs) > 0 {
		stmt = stmt.Where(exprs...)
	}

	query, args, err := stmt.ToSQL()
	if err != nil {
		return nil, apperr.Storage("build book listing query", err)
	}

	books := []Book{}
	if err := s.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, apperr.Storage("list books", err)
	}
	return books, nil
}

func (s *pgStore) ByID(ctx context.Context, id int64) (*Book, error) {
	const query = `
		SELECT book_id, title, author, isbn, genre, cost, status, created_at, updated_at
		FROM books
		WHERE book_id = $1
	`
	var b Book
	if err := s.db.GetContext(ctx, &b, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFoundf("book id %d not found", id)
		}
		return nil, apperr.Storage("get book", err)
	}
	return &b, nil
}

func (s *pgStore) UpdateDetails(ctx context.Context, id int64, u Update) error {
	rec := goqu.Record{"updated_at": goqu.L("NOW()")}
	if u.Title != nil {
		rec["title"] = *u.Title
	}
	if u.Author != nil {
		rec["author"] = *u.Author
	}
	if u.ISBN != nil {
		rec["isbn"] = *u.ISBN
	}
	if u.Genre != nil {
		rec["genre"] = *u.Genre
	}
	if u.Cost != nil {
		rec["cost"] = *u.Cost
	}

	stmt := goqu.Dialect(postgres.Dialect).
		Update(booksTable).
		Set(rec).
		Where(goqu.C("book_id").Eq(id)).
		Prepared(true)

	query, args, err := stmt.ToSQL()
	if err != nil {
		return apperr.Storage("build book update query", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return apperr.Storage("update book details", err)
	}
	return requireRow(res, fmt.Sprintf("book id %d not found", id))
}

func (s *pgStore) UpdateStatus(ctx context.Context, id int64, status Status) error {
	const query = `UPDATE books SET status = $1, updated_at = NOW() WHERE book_id = $2`
	res, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return apperr.Storage("update book status", err)
	}
	return requireRow(res, fmt.Sprintf("book id %d not found", id))
}

// Remove soft-deletes a book. The read-check-write runs in one transaction
// with the row locked so a concurrent checkout cannot slip in between.
func (s *pgStore) Remove(ctx context.Context, id int64) error {
	return s.db.WithinTx(ctx, func(tx *sqlx.Tx) error {
		var status Status
		err := tx.GetContext(ctx, &status, `SELECT status FROM books WHERE book_id = $1 FOR UPDATE`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFoundf("book id %d not found", id)
		}
		if err != nil {
			return apperr.Storage("get book for delete", err)
		}
		if status == StatusBorrowed {
			return apperr.Conflictf("book id %d is currently BORROWED and cannot be deleted", id)
		}

		_, err = tx.ExecContext(ctx, `UPDATE books SET status = $1, updated_at = NOW() WHERE book_id = $2`, StatusRemoved, id)
		if err != nil {
			return apperr.Storage("mark book removed", err)
		}
		return nil
	})
}

func requireRow(res sql.Result, notFoundMsg string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage("read rows affected", err)
	}
	if n == 0 {
		return apperr.NotFoundf("%s", notFoundMsg)
	}
	return nil
}
