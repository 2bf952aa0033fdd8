// internal/accounts/service.go
package accounts

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for staff account management.
type Service interface {
	Register(ctx context.Context, email, firstName, lastName, password string) (*Account, error)
	Authenticate(ctx context.Context, email, password string) (*Account, error)
	ByID(ctx context.Context, id uuid.UUID) (*Account, error)
}

// Store is the persistence boundary for accounts.
type Store interface {
	Insert(ctx context.Context, acct *Account, passwordHash string) error
	ByEmail(ctx context.Context, email string) (*Account, error)
	ByID(ctx context.Context, id uuid.UUID) (*Account, error)
	CredentialByID(ctx context.Context, id uuid.UUID) (*credential, error)
}
