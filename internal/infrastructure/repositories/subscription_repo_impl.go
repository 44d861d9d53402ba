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

type subscriptionRepo struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) domainrepos.SubscriptionRepository {
	return &subscriptionRepo{db: db}
}

func (r *subscriptionRepo) Create(ctx context.Context, sub *entities.SubscriptionHistory) error {
	if sub.ID == uuid.Nil {
		sub.ID = utils.GenerateUUIDv7()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}
	row := &models.SubscriptionHistory{
		ID:        sub.ID,
		VendorID:  sub.VendorID,
		PlanType:  string(sub.PlanType),
		Amount:    sub.Amount,
		StartDate: sub.StartDate,
		EndDate:   sub.EndDate,
		Status:    string(sub.Status),
		CreatedAt: sub.CreatedAt,
	}
	return GetDB(ctx, r.db).Create(row).Error
}

func (r *subscriptionRepo) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*entities.SubscriptionHistory, error) {
	var rows []models.SubscriptionHistory
	if err := GetDB(ctx, r.db).Where("vendor_id = ?", vendorID).Order("start_date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.SubscriptionHistory, 0, len(rows))
	for i := range rows {
		m := rows[i]
		items = append(items, &entities.SubscriptionHistory{
			ID:        m.ID,
			VendorID:  m.VendorID,
			PlanType:  entities.PackagePlan(m.PlanType),
			Amount:    m.Amount,
			StartDate: m.StartDate,
			EndDate:   m.EndDate,
			Status:    entities.SubscriptionStatus(m.Status),
			CreatedAt: m.CreatedAt,
		})
	}
	return items, nil
}

func (r *subscriptionRepo) ExpireDue(ctx context.Context, now time.Time, limit int) (int64, error) {
	db := GetDB(ctx, r.db)
	due := db.Model(&models.SubscriptionHistory{}).
		Select("id").
		Where("status = ? AND end_date < ?", string(entities.SubscriptionStatusActive), now).
		Limit(limit)

	result := db.Model(&models.SubscriptionHistory{}).
		Where("id IN (?)", due).
		Update("status", string(entities.SubscriptionStatusExpired))
	return result.RowsAffected, result.Error
}
