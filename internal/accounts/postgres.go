// internal/accounts/postgres.go
package accounts

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/jeorgesilva/lianes-library/internal/apperr"
	"github.com/jeorgesilva/lianes-library/internal/postgres"
)

// pgStore persists accounts in Postgres.
type pgStore struct {
	db *postgres.DB
}

// NewPostgresStore creates a Store backed by the given database.
func NewPostgresStore(db *postgres.DB) Store {
	return &pgStore{db: db}
}

const accountColumns = `account_id, email, first_name, last_name, created_at`

func (s *pgStore) Insert(ctx context.Context, acct *Account, passwordHash string) error {
	query := `
		INSERT INTO accounts (account_id, email, first_name, last_name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		acct.ID, acct.Email, acct.FirstName, acct.LastName, passwordHash, acct.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return apperr.Conflictf("an account with email %q already exists", acct.Email)
		}
		return apperr.Storage("failed to insert account", err)
	}
	return nil
}

func (s *pgStore) ByEmail(ctx context.Context, email string) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	var acct Account
	if err := s.db.GetContext(ctx, &acct, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFoundf("account with email %q not found", email)
		}
		return nil, apperr.Storage("failed to query account", err)
	}
	return &acct, nil
}

func (s *pgStore) ByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1`

	var acct Account
	if err := s.db.GetContext(ctx, &acct, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFoundf("account %s not found", id)
		}
		return nil, apperr.Storage("failed to query account", err)
	}
	return &acct, nil
}

func (s *pgStore) CredentialByID(ctx context.Context, id uuid.UUID) (*credential, error) {
	query := `SELECT account_id, password_hash FROM accounts WHERE account_id = $1`

	var cred credential
	if err := s.db.GetContext(ctx, &cred, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFoundf("account %s not found", id)
		}
		return nil, apperr.Storage("failed to query credential", err)
	}
	return &cred, nil
}
