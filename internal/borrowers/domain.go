// internal/borrowers/domain.go
package borrowers

import "time"

// Status is the membership state of a borrower.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// Valid reports whether s is part of the allowed enumeration.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Borrower is a registered library patron.
type Borrower struct {
	ID               int64     `json:"person_id" db:"person_id"`
	FirstName        string    `json:"first_name" db:"first_name"`
	LastName         string    `json:"last_name" db:"last_name"`
	Email            *string   `json:"email,omitempty" db:"email"`
	Phone            *string   `json:"phone,omitempty" db:"phone"`
	Address          *string   `json:"address,omitempty" db:"address"`
	RelationshipType *string   `json:"relationship_type,omitempty" db:"relationship_type"`
	Status           Status    `json:"status" db:"status"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// DisplayName is used when loans are denormalized for responses.
func (b Borrower) DisplayName() string {
	return b.FirstName + " " + b.LastName
}

// NewBorrower carries the fields accepted at registration time.
type NewBorrower struct {
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	Email            *string `json:"email,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	Address          *string `json:"address,omitempty"`
	RelationshipType *string `json:"relationship_type,omitempty"`
}

// ContactUpdate is a partial update of contact fields.
type ContactUpdate struct {
	FirstName        *string `json:"first_name,omitempty"`
	LastName         *string `json:"last_name,omitempty"`
	Email            *string `json:"email,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	Address          *string `json:"address,omitempty"`
	RelationshipType *string `json:"relationship_type,omitempty"`
}

// Empty reports whether the update carries no fields at all.
func (u ContactUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil &&
		u.Phone == nil && u.Address == nil && u.RelationshipType == nil
}

// Filter narrows a borrower listing. Name matches either name column as a
// case-insensitive substring; Status matches exactly.
type Filter struct {
	Name   string
	Status Status
	Limit  int
}

// DefaultListLimit applies when a filter does not set one.
const DefaultListLimit = 100
