// internal/borrowers/implementation.go
package borrowers

import (
	"context"
	"strings"

	"github.com/jeorgesilva/lianes-library/internal/apperr"
)

// service implements the Service interface.
type service struct {
	store Store
}

// NewService creates a new borrower service instance.
func NewService(store Store) Service {
	return &service{store: store}
}

func (s *service) CreateBorrower(ctx context.Context, nb NewBorrower) (*Borrower, error) {
	first := strings.TrimSpace(nb.FirstName)
	last := strings.TrimSpace(nb.LastName)
	if first == "" || last == "" {
		return nil, apperr.Validationf("first and last name are required")
	}

	borrower := &Borrower{
		FirstName:        first,
		LastName:         last,
		Email:            nb.Email,
		Phone:            nb.Phone,
		Address:          nb.Address,
		RelationshipType: nb.RelationshipType,
		Status:           StatusActive,
	}
	if err := s.store.Insert(ctx, borrower); err != nil {
		return nil, err
	}
	return borrower, nil
}

func (s *service) GetBorrowers(ctx context.Context, f Filter) ([]Borrower, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, apperr.Validationf("invalid status %q", f.Status)
	}
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	return s.store.List(ctx, f)
}

func (s *service) GetBorrowerByID(ctx context.Context, id int64) (*Borrower, error) {
	return s.store.ByID(ctx, id)
}

func (s *service) UpdateBorrowerContact(ctx context.Context, id int64, u ContactUpdate) (*Borrower, error) {
	if u.Empty() {
		return nil, apperr.Validationf("no contact fields to update")
	}
	if err := s.store.UpdateContact(ctx, id, u); err != nil {
		return nil, err
	}
	return s.store.ByID(ctx, id)
}

func (s *service) SetBorrowerStatus(ctx context.Context, id int64, status Status) error {
	if !status.Valid() {
		return apperr.Validationf("invalid status %q", status)
	}
	return s.store.UpdateStatus(ctx, id, status)
}

// DeleteBorrower soft-deletes. A borrower with open loans cannot be removed.
func (s *service) DeleteBorrower(ctx context.Context, id int64) error {
	return s.store.Remove(ctx, id)
}
