// internal/borrowers/service.go
package borrowers

import "context"

// Service defines the interface for borrower management.
type Service interface {
	CreateBorrower(ctx context.Context, nb NewBorrower) (*Borrower, error)
	GetBorrowers(ctx context.Context, f Filter) ([]Borrower, error)
	GetBorrowerByID(ctx context.Context, id int64) (*Borrower, error)
	UpdateBorrowerContact(ctx context.Context, id int64, u ContactUpdate) (*Borrower, error)
	SetBorrowerStatus(ctx context.Context, id int64, status Status) error
	DeleteBorrower(ctx context.Context, id int64) error
}

// Store is the persistence surface the borrower service drives.
type Store interface {
	Insert(ctx context.Context, b *Borrower) error
	List(ctx context.Context, f Filter) ([]Borrower, error)
	ByID(ctx context.Context, id int64) (*Borrower, error)
	UpdateContact(ctx context.Context, id int64, u ContactUpdate) error
	UpdateStatus(ctx context.Context, id int64, status Status) error
	Remove(ctx context.Context, id int64) error
}
