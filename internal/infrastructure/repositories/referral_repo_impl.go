package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"rimmarsa.backend/internal/domain/entities"
	domainrepos "rimmarsa.backend/internal/domain/repositories"
	"rimmarsa.backend/internal/infrastructure/models"
	"rimmarsa.backend/pkg/utils"
)

type referralRepo struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) domainrepos.ReferralRepository {
	return &referralRepo{db: db}
}

// Create inserts a referral. A vendor can only be referred once.
func (r *referralRepo) Create(ctx context.Context, referral *entities.Referral) error {
	if referral.ID == uuid.Nil {
		referral.ID = utils.GenerateUUIDv7()
	}
	if referral.CreatedAt.IsZero() {
		referral.CreatedAt = time.Now()
	}
	row := &models.Referral{
		ID:               referral.ID,
		ReferrerID:       referral.ReferrerID,
		ReferredVendorID: referral.ReferredVendorID,
		ReferralCode:     referral.ReferralCode,
		CommissionEarned: referral.CommissionEarned,
		Status:           referral.Status,
		CreatedAt:        referral.CreatedAt,
	}
	return mapUniqueViolation(GetDB(ctx, r.db).Create(row).Error)
}

func (r *referralRepo) ListByReferrer(ctx context.Context, referrerID uuid.UUID) ([]*entities.Referral, error) {
	var rows []models.Referral
	if err := GetDB(ctx, r.db).Where("referrer_id = ?", referrerID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.Referral, 0, len(rows))
	for i := range rows {
		m := rows[i]
		items = append(items, &entities.Referral{
			ID:               m.ID,
			ReferrerID:       m.ReferrerID,
			ReferredVendorID: m.ReferredVendorID,
			ReferralCode:     m.ReferralCode,
			CommissionEarned: m.CommissionEarned,
			Status:           m.Status,
			CreatedAt:        m.CreatedAt,
		})
	}
	return items, nil
}
