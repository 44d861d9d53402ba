package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"rimmarsa.backend/internal/domain/entities"
	domainerrors "rimmarsa.backend/internal/domain/errors"
	domainrepos "rimmarsa.backend/internal/domain/repositories"
	"rimmarsa.backend/internal/infrastructure/models"
	"rimmarsa.backend/pkg/utils"
)

type uploadTokenRepo struct {
	db *gorm.DB
}

func NewUploadTokenRepository(db *gorm.DB) domainrepos.UploadTokenRepository {
	return &uploadTokenRepo{db: db}
}

func (r *uploadTokenRepo) Create(ctx context.Context, token *entities.UploadToken) error {
	if token.ID == uuid.Nil {
		token.ID = utils.GenerateUUIDv7()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	row := &models.UploadToken{
		ID:              token.ID,
		Token:           token.Token,
		VendorRequestID: token.VendorRequestID,
		IsActive:        token.IsActive,
		ExpiresAt:       token.ExpiresAt,
		MaxUploads:      token.MaxUploads,
		UploadsUsed:     token.UploadsUsed,
		CreatedBy:       token.CreatedBy,
		CreatedAt:       token.CreatedAt,
	}
	return mapUniqueViolation(GetDB(ctx, r.db).Create(row).Error)
}

func (r *uploadTokenRepo) GetByToken(ctx context.Context, token string) (*entities.UploadToken, error) {
	var m models.UploadToken
	if err := GetDB(ctx, r.db).Where("token = ?", token).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return &entities.UploadToken{
		ID:              m.ID,
		Token:           m.Token,
		VendorRequestID: m.VendorRequestID,
		IsActive:        m.IsActive,
		ExpiresAt:       m.ExpiresAt,
		MaxUploads:      m.MaxUploads,
		UploadsUsed:     m.UploadsUsed,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt,
	}, nil
}

func (r *uploadTokenRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Model(&models.UploadToken{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *uploadTokenRepo) IncrementUsage(ctx context.Context, id uuid.UUID) (bool, error) {
	result := GetDB(ctx, r.db).Model(&models.UploadToken{}).
		Where("id = ? AND is_active = ? AND uploads_used < max_uploads", id, true).
		Update("uploads_used", gorm.Expr("uploads_used + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
