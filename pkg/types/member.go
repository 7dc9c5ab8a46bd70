package types

import (
	"net/mail"
	"time"
)

// Field limits for Member validation.
const (
	NameMaxLen  = 50
	EmailMaxLen = 100
)

// Member represents a person who may own work items. Work items reference
// members by id only; deleting a member unassigns their items but never
// deletes the items themselves.
type Member struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the field constraints on the member.
// Returns ErrInvalidName or ErrInvalidEmail on violation.
func (m *Member) Validate() error {
	if m.Name == "" || len(m.Name) > NameMaxLen {
		return ErrInvalidName
	}
	if m.Email == "" || len(m.Email) > EmailMaxLen {
		return ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(m.Email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// Clone returns an independent copy of the member.
func (m *Member) Clone() *Member {
	c := *m
	return &c
}
