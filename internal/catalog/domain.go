// internal/catalog/domain.go
package catalog

import "time"

// Status is the availability state of a book.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusBorrowed  Status = "BORROWED"
	StatusLost      Status = "LOST"
	StatusDamaged   Status = "DAMAGED"
	StatusRemoved   Status = "REMOVED"
)

// Valid reports whether s is part of the allowed enumeration.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusBorrowed, StatusLost, StatusDamaged, StatusRemoved:
		return true
	}
	return false
}

// Book is a single catalog record.
type Book struct {
	ID        int64     `json:"book_id" db:"book_id"`
	Title     string    `json:"title" db:"title"`
	Author    string    `json:"author" db:"author"`
	ISBN      *string   `json:"isbn,omitempty" db:"isbn"`
	Genre     *string   `json:"genre,omitempty" db:"genre"`
	Cost      *float64  `json:"cost,omitempty" db:"cost"`
	Status    Status    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewBook carries the fields accepted at creation time.
type NewBook struct {
	Title  string   `json:"title"`
	Author string   `json:"author"`
	ISBN   *string  `json:"isbn,omitempty"`
	Genre  *string  `json:"genre,omitempty"`
	Cost   *float64 `json:"cost,omitempty"`
}

// Update is a partial update; nil fields are left untouched.
type Update struct {
	Title  *string  `json:"title,omitempty"`
	Author *string  `json:"author,omitempty"`
	ISBN   *string  `json:"isbn,omitempty"`
	Genre  *string  `json:"genre,omitempty"`
	Cost   *float64 `json:"cost,omitempty"`
}

// Empty reports whether the update carries no fields at all.
func (u Update) Empty() bool {
	return u.Title == nil && u.Author == nil && u.ISBN == nil && u.Genre == nil && u.Cost == nil
}

// Filter narrows a book listing. Title and Author match as case-insensitive
// substrings; Genre and Status match exactly.
type Filter struct {
	Title  string
	Author string
	Genre  string
	Status Status
	Limit  int
}

// DefaultListLimit applies when a filter does not set one.
const DefaultListLimit = 100
