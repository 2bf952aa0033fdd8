// internal/accounts/domain.go
package accounts

import (
	"time"

	"github.com/google/uuid"
)

// Account is a staff login for the library back office.
type Account struct {
	ID        uuid.UUID `json:"account_id" db:"account_id"`
	Email     string    `json:"email" db:"email"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// credential is the stored password record; never serialized.
type credential struct {
	AccountID    uuid.UUID `db:"account_id"`
	PasswordHash string    `db:"password_hash"`
}
