package entities

import "github.com/google/uuid"

// IdentityUser is the identity store's view of a login account
type IdentityUser struct {
	ID       uuid.UUID         `json:"id"`
	Email    string            `json:"email"`
	Phone    string            `json:"phone,omitempty"`
	Role     string            `json:"role"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// CreateIdentityInput describes a new login account
type CreateIdentityInput struct {
	Email    string
	Password string
	Phone    string
	Role     string
	Metadata map[string]string
}

// UpdateIdentityInput changes fields of an existing account; empty fields are left alone
type UpdateIdentityInput struct {
	Email    string
	Password string
	Metadata map[string]string
}
