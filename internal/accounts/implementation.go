// internal/accounts/implementation.go
package accounts

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jeorgesilva/lianes-library/internal/apperr"
)

// service implements the Service interface.
type service struct {
	store   Store
	limiter *rate.Limiter
	now     func() time.Time
}

// NewService creates a new accounts service instance. Register and
// Authenticate share one limiter, 10 attempts per minute.
func NewService(store Store) Service {
	return &service{
		store:   store,
		limiter: rate.NewLimiter(rate.Every(6*time.Second), 10),
		now:     time.Now,
	}
}

// Register creates a new staff account.
func (s *service) Register(ctx context.Context, email, firstName, lastName, password string) (*Account, error) {
	if !s.limiter.Allow() {
		return nil, apperr.RateLimitedf("too many attempts, try again later")
	}

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperr.Validationf("a valid email is required")
	}
	if len(password) < 8 {
		return nil, apperr.Validationf("password must be at least 8 characters")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, apperr.Storage("failed to hash password", err)
	}

	acct := &Account{
		ID:        uuid.New(),
		Email:     email,
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		CreatedAt: s.now().UTC(),
	}

	if err := s.store.Insert(ctx, acct, hash); err != nil {
		return nil, err
	}

	return acct, nil
}

// Authenticate verifies credentials and returns the account on success.
// Invalid email and invalid password are indistinguishable to the caller.
func (s *service) Authenticate(ctx context.Context, email, password string) (*Account, error) {
	if !s.limiter.Allow() {
		return nil, apperr.RateLimitedf("too many attempts, try again later")
	}

	email = strings.TrimSpace(strings.ToLower(email))

	acct, err := s.store.ByEmail(ctx, email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Validationf("invalid credentials")
		}
		return nil, err
	}

	cred, err := s.store.CredentialByID(ctx, acct.ID)
	if err != nil {
		return nil, err
	}

	ok, err := verifyPassword(password, cred.PasswordHash)
	if err != nil {
		return nil, apperr.Storage("failed to verify password", err)
	}
	if !ok {
		return nil, apperr.Validationf("invalid credentials")
	}

	return acct, nil
}

// ByID retrieves an account by its identifier.
func (s *service) ByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.store.ByID(ctx, id)
}
