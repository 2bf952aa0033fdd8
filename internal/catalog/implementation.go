// internal/catalog/implementation.go
package catalog

import (
	"context"
	"strings"

	"github.com/jeorgesilva/lianes-library/internal/apperr"
)

// service implements the Service interface.
type service struct {
	store Store
}

// NewService creates a new catalog service instance.
func NewService(store Store) Service {
	return &service{store: store}
}

// CreateBook inserts a new book with status AVAILABLE.
func (s *service) CreateBook(ctx context.Context, nb NewBook) (*Book, error) {
	if strings.TrimSpace(nb.Title) == "" {
		return nil, apperr.Validationf("title is required")
	}

	book := &Book{
		Title:  strings.TrimSpace(nb.Title),
		Author: strings.TrimSpace(nb.Author),
		ISBN:   nb.ISBN,
		Genre:  nb.Genre,
		Cost:   nb.Cost,
		Status: StatusAvailable,
	}
	if err := s.store.Insert(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *service) GetBooks(ctx context.Context, f Filter) ([]Book, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, apperr.Validationf("invalid status %q", f.Status)
	}
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	return s.store.List(ctx, f)
}

func (s *service) GetBookByID(ctx context.Context, id int64) (*Book, error) {
	return s.store.ByID(ctx, id)
}

// UpdateBookDetails applies a partial update and returns the fresh record.
func (s *service) UpdateBookDetails(ctx context.Context, id int64, u Update) (*Book, error) {
	if u.Empty() {
		return nil, apperr.Validationf("no fields to update")
	}
	if err := s.store.UpdateDetails(ctx, id, u); err != nil {
		return nil, err
	}
	return s.store.ByID(ctx, id)
}

func (s *service) UpdateBookStatus(ctx context.Context, id int64, status Status) error {
	if !status.Valid() {
		return apperr.Validationf("invalid status %q", status)
	}
	return s.store.UpdateStatus(ctx, id, status)
}

// DeleteBook soft-deletes. A borrowed book cannot be removed until returned.
func (s *service) DeleteBook(ctx context.Context, id int64) error {
	return s.store.Remove(ctx, id)
}
