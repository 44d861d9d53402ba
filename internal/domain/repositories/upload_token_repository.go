package repositories

import (
	"context"

	"github.com/google/uuid"
	"rimmarsa.backend/internal/domain/entities"
)

// UploadTokenRepository defines upload token data operations
type UploadTokenRepository interface {
	Create(ctx context.Context, token *entities.UploadToken) error
	GetByToken(ctx context.Context, token string) (*entities.UploadToken, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	// IncrementUsage adds one use while uploads_used < max_uploads and reports whether it did
	IncrementUsage(ctx context.Context, id uuid.UUID) (bool, error)
}
