// internal/catalog/service.go
package catalog

import "context"

// Service defines the interface for the book catalog.
type Service interface {
	CreateBook(ctx context.Context, nb NewBook) (*Book, error)
	GetBooks(ctx context.Context, f Filter) ([]Book, error)
	GetBookByID(ctx context.Context, id int64) (*Book, error)
	UpdateBookDetails(ctx context.Context, id int64, u Update) (*Book, error)
	UpdateBookStatus(ctx context.Context, id int64, status Status) error
	DeleteBook(ctx context.Context, id int64) error
}

// Store is the persistence surface the catalog service drives.
type Store interface {
	Insert(ctx context.Context, b *Book) error
	List(ctx context.Context, f Filter) ([]Book, error)
	ByID(ctx context.Context, id int64) (*Book, error)
	UpdateDetails(ctx context.Context, id int64, u Update) error
	UpdateStatus(ctx context.Context, id int64, status Status) error
	Remove(ctx context.Context, id int64) error
}
