package repositories

import (
	"context"

	"github.com/google/uuid"
	"rimmarsa.backend/internal/domain/entities"
)

// IdentityStore manages login accounts outside the relational store.
// Implementations return ErrConflict when the email is taken, ErrNotFound for unknown
// users and ErrInvalidCredentials when VerifyPassword fails.
type IdentityStore interface {
	CreateUser(ctx context.Context, input entities.CreateIdentityInput) (*entities.IdentityUser, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input entities.UpdateIdentityInput) (*entities.IdentityUser, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	VerifyPassword(ctx context.Context, email, password string) (*entities.IdentityUser, error)
}

// ObjectStorage stores uploaded files and returns their public URL
type ObjectStorage interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
}
