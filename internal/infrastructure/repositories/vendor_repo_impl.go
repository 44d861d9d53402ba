package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"rimmarsa.backend/internal/domain/entities"
	domainerrors "rimmarsa.backend/internal/domain/errors"
	domainrepos "rimmarsa.backend/internal/domain/repositories"
	"rimmarsa.backend/internal/infrastructure/models"
	"rimmarsa.backend/pkg/utils"
)

type vendorRepo struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) domainrepos.VendorRepository {
	return &vendorRepo{db: db}
}

func (r *vendorRepo) Create(ctx context.Context, vendor *entities.Vendor) error {
	if vendor.ID == uuid.Nil {
		vendor.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	if vendor.CreatedAt.IsZero() {
		vendor.CreatedAt = now
	}
	vendor.UpdatedAt = now

	return mapUniqueViolation(GetDB(ctx, r.db).Create(toVendorModel(vendor)).Error)
}

func (r *vendorRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Vendor, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *vendorRepo) GetByPhone(ctx context.Context, phone string) (*entities.Vendor, error) {
	return r.first(ctx, "phone = ?", phone)
}

func (r *vendorRepo) GetByEmail(ctx context.Context, email string) (*entities.Vendor, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *vendorRepo) GetByPromoCode(ctx context.Context, code string) (*entities.Vendor, error) {
	return r.first(ctx, "promo_code = ?", code)
}

func (r *vendorRepo) PromoCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.Vendor{}).Where("promo_code = ?", code).Count(&count).Error
	return count > 0, err
}

// LinkIdentity attaches an identity user to an existing vendor and approves it.
// The promo code is only written when the link carries one.
func (r *vendorRepo) LinkIdentity(ctx context.Context, link entities.VendorLink) error {
	updates := map[string]interface{}{
		"user_id":     link.UserID,
		"email":       link.Email,
		"is_approved": true,
		"approved_at": link.ApprovedAt,
		"updated_at":  link.ApprovedAt,
	}
	if link.PromoCode.Valid {
		updates["promo_code"] = link.PromoCode.String
	}

	result := GetDB(ctx, r.db).Model(&models.Vendor{}).Where("id = ?", link.VendorID).Updates(updates)
	if result.Error != nil {
		return mapUniqueViolation(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *vendorRepo) UpdateSubscriptionEndDate(ctx context.Context, id uuid.UUID, end time.Time) error {
	result := GetDB(ctx, r.db).Model(&models.Vendor{}).Where("id = ?", id).
		Updates(map[string]interface{}{"subscription_end_date": end, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *vendorRepo) first(ctx context.Context, query string, arg interface{}) (*entities.Vendor, error) {
	var row models.Vendor
	if err := GetDB(ctx, r.db).Where(query, arg).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	return toVendorEntity(&row), nil
}

func toVendorModel(v *entities.Vendor) *models.Vendor {
	return &models.Vendor{
		ID:                  v.ID,
		BusinessName:        v.BusinessName,
		OwnerName:           v.OwnerName,
		Phone:               v.Phone,
		Email:               v.Email.Ptr(),
		UserID:              v.UserID,
		PromoCode:           v.PromoCode.Ptr(),
		IsActive:            v.IsActive,
		IsApproved:          v.IsApproved,
		ApprovedAt:          v.ApprovedAt.Ptr(),
		RegionID:            v.RegionID,
		CityID:              v.CityID,
		Address:             v.Address.Ptr(),
		WhatsappNumber:      v.WhatsappNumber.Ptr(),
		LogoURL:             v.LogoURL.Ptr(),
		NNIImageURL:         v.NNIImageURL.Ptr(),
		PersonalImageURL:    v.PersonalImageURL.Ptr(),
		StoreImageURL:       v.StoreImageURL.Ptr(),
		PaymentImageURL:     v.PaymentImageURL.Ptr(),
		SubscriptionEndDate: v.SubscriptionEndDate.Ptr(),
		CreatedAt:           v.CreatedAt,
		UpdatedAt:           v.UpdatedAt,
	}
}

func toVendorEntity(m *models.Vendor) *entities.Vendor {
	return &entities.Vendor{
		ID:                  m.ID,
		BusinessName:        m.BusinessName,
		OwnerName:           m.OwnerName,
		Phone:               m.Phone,
		Email:               null.StringFromPtr(m.Email),
		UserID:              m.UserID,
		PromoCode:           null.StringFromPtr(m.PromoCode),
		IsActive:            m.IsActive,
		IsApproved:          m.IsApproved,
		ApprovedAt:          null.TimeFromPtr(m.ApprovedAt),
		RegionID:            m.RegionID,
		CityID:              m.CityID,
		Address:             null.StringFromPtr(m.Address),
		WhatsappNumber:      null.StringFromPtr(m.WhatsappNumber),
		LogoURL:             null.StringFromPtr(m.LogoURL),
		NNIImageURL:         null.StringFromPtr(m.NNIImageURL),
		PersonalImageURL:    null.StringFromPtr(m.PersonalImageURL),
		StoreImageURL:       null.StringFromPtr(m.StoreImageURL),
		PaymentImageURL:     null.StringFromPtr(m.PaymentImageURL),
		SubscriptionEndDate: null.TimeFromPtr(m.SubscriptionEndDate),
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
