package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"rimmarsa.backend/internal/domain/entities"
	domainerrors "rimmarsa.backend/internal/domain/errors"
	"rimmarsa.backend/internal/domain/repositories"
	"rimmarsa.backend/pkg/crypto"
	"rimmarsa.backend/pkg/logger"
	"rimmarsa.backend/pkg/utils"
)

// UploadTokenUsecase issues tokens that authorize vendor image uploads
type UploadTokenUsecase struct {
	tokenRepo     repositories.UploadTokenRepository
	requestRepo   repositories.VendorRequestRepository
	now           func() time.Time
	generateToken func() (string, error)
}

// NewUploadTokenUsecase creates a new upload token usecase
func NewUploadTokenUsecase(tokenRepo repositories.UploadTokenRepository, requestRepo repositories.VendorRequestRepository) *UploadTokenUsecase {
	return &UploadTokenUsecase{
		tokenRepo:     tokenRepo,
		requestRepo:   requestRepo,
		now:           time.Now,
		generateToken: crypto.GenerateUploadToken,
	}
}

// Issue creates a token. Zero MaxUploads or TTLMinutes fall back to the defaults.
// createdBy is nil for tokens handed to the public registration form.
func (u *UploadTokenUsecase) Issue(ctx context.Context, input entities.UploadTokenInput, createdBy *uuid.UUID) (*entities.UploadToken, error) {
	maxUploads := input.MaxUploads
	if maxUploads == 0 {
		maxUploads = DefaultUploadTokenMaxUploads
	}
	if maxUploads < 0 || maxUploads > MaxUploadTokenUploads {
		return nil, domainerrors.Validation(fmt.Sprintf("max_uploads must be between 1 and %d", MaxUploadTokenUploads))
	}

	ttl := time.Duration(input.TTLMinutes) * time.Minute
	if input.TTLMinutes == 0 {
		ttl = DefaultUploadTokenTTL
	}
	if ttl < 0 || ttl > MaxUploadTokenTTL {
		return nil, domainerrors.Validation(fmt.Sprintf("ttl_minutes must be between 1 and %d", int(MaxUploadTokenTTL/time.Minute)))
	}

	if input.VendorRequestID != nil {
		if _, err := u.requestRepo.GetByID(ctx, *input.VendorRequestID); err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil, domainerrors.NotFound("vendor request not found")
			}
			return nil, fmt.Errorf("load vendor request: %w", err)
		}
	}

	value, err := u.generateToken()
	if err != nil {
		return nil, err
	}

	now := u.now().UTC()
	token := &entities.UploadToken{
		ID:              utils.GenerateUUIDv7(),
		Token:           value,
		VendorRequestID: input.VendorRequestID,
		IsActive:        true,
		ExpiresAt:       now.Add(ttl),
		MaxUploads:      maxUploads,
		CreatedBy:       createdBy,
		CreatedAt:       now,
	}
	if err := u.tokenRepo.Create(ctx, token); err != nil {
		return nil, fmt.Errorf("create upload token: %w", err)
	}

	logger.Info(ctx, "Upload token issued",
		zap.String("token_id", token.ID.String()),
		zap.Int("max_uploads", maxUploads),
		zap.Time("expires_at", token.ExpiresAt),
	)
	return token, nil
}
