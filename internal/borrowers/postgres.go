// internal/borrowers/postgres.go
package borrowers

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

const borrowersTable = "borrowers"

var borrowerColumns = []any{
	"person_id", "first_name", "last_name", "email", "phone", "address",
	"relationship_type", "status", "created_at", "updated_at",
}

// pgStore persists borrowers in Postgres.
type pgStore struct {
	db *postgres.DB
}

// NewPostgresStore creates the Postgres-backed borrower store.
func NewPostgresStore(db *postgres.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) Insert(ctx context.Context, b *Borrower) error {
	const query = `
		INSERT INTO borrowers (first_name, last_name, email, phone, address, relationship_type, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING person_id, created_at, updated_at
	`
	err := s.db.GetContext(ctx, b, query,
		b.FirstName, b.LastName, b.Email, b.Phone, b.Address, b.RelationshipType, b.Status)
	if err != nil {
		return apperr.Storage("insert borrower", err)
	}
	return nil
}

func (s *pgStore) List(ctx context.Context, f Filter) ([]Borrower, error) {
	stmt := goqu.Dialect(postgres.Dialect).
		From(borrowersTable).
		Select(borrowerColumns...).
		Order(goqu.I("person_id").Asc()).
		Limit(uint(f.Limit)).
		Prepared(true)

	exprs := make([]goqu.Expression, 0, 2)
	if f.Name != "" {
		pattern := "%" + f.Name + "%"
		exprs = append(exprs, goqu.Or(
			goqu.I("first_name").ILike(pattern),
			goqu.I("last_name").ILike(pattern),
		))
	}
	if f.Status != "" {
		exprs = append(exprs, goqu.I("status").Eq(string(f.Status)))
	}
	if len(exprs) > 0 {
		stmt = stmt.Where(exprs...)
	}

	query, args, err := stmt.ToSQL()
	if err != nil {
		return nil, apperr.Storage("build borrower listing query", err)
	}

	out := []Borrower{}
	if err := s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, apperr.Storage("list borrowers", err)
	}
	return out, nil
}

func (s *pgStore) ByID(ctx context.Context, id int64) (*Borrower, error) {
	const query = `
		SELECT person_id, first_name, last_name, email, phone, address,
		       relationship_type, status, created_at, updated_at
		FROM borrowers
		WHERE person_id = $1
	`
	var b Borrower
	if err := s.db.GetContext(ctx, &b, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFoundf("borrower id %d not found", id)
		}
		return nil, apperr.Storage("get borrower", err)
	}
	return &b, nil
}

func (s *pgStore) UpdateContact(ctx context.Context, id int64, u ContactUpdate) error {
	rec := goqu.Record{"updated_at": goqu.L("NOW()")}
	if u.FirstName != nil {
		rec["first_name"] = *u.FirstName
	}
	if u.LastName != nil {
		rec["last_name"] = *u.LastName
	}
	if u.Email != nil {
		rec["email"] = *u.Email
	}
	if u.Phone != nil {
		rec["phone"] = *u.Phone
	}
	if u.Address != nil {
		rec["address"] = *u.Address
	}
	if u.RelationshipType != nil {
		rec["relationship_type"] = *u.RelationshipType
	}

	stmt := goqu.Dialect(postgres.Dialect).
		Update(borrowersTable).
		Set(rec).
		Where(goqu.C("person_id").Eq(id)).
		Prepared(true)

	query, args, err := stmt.ToSQL()
	if err != nil {
		return apperr.Storage("build borrower update query", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return apperr.Storage("update borrower contact", err)
	}
	return requireRow(res, fmt.Sprintf("borrower id %d not found", id))
}

func (s *pgStore) UpdateStatus(ctx context.Context, id int64, status Status) error {
	const query = `UPDATE borrowers SET status = $1, updated_at = NOW() WHERE person_id = $2`
	res, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return apperr.Storage("update borrower status", err)
	}
	return requireRow(res, fmt.Sprintf("borrower id %d not found", id))
}

// Remove soft-deletes a borrower unless an open loan references them. The
// check and the write share one transaction so a concurrent checkout cannot
// race the delete.
func (s *pgStore) Remove(ctx context.Context, id int64) error {
	return s.db.WithinTx(ctx, func(tx *sqlx.Tx) error {
		var locked int64
		err := tx.GetContext(ctx, &locked, `SELECT person_id FROM borrowers WHERE person_id = $1 FOR UPDATE`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFoundf("borrower id %d not found", id)
		}
		if err != nil {
			return apperr.Storage("get borrower for delete", err)
		}

		var openLoans int
		err = tx.GetContext(ctx, &openLoans,
			`SELECT COUNT(*) FROM transactions WHERE person_id = $1 AND actual_return_date IS NULL`, id)
		if err != nil {
			return apperr.Storage("count open loans", err)
		}
		if openLoans > 0 {
			return apperr.Conflictf("borrower id %d has %d open loan(s) and cannot be removed", id, openLoans)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE borrowers SET status = $1, updated_at = NOW() WHERE person_id = $2`, StatusInactive, id)
		if err != nil {
			return apperr.Storage("mark borrower inactive", err)
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
