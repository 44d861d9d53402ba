package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"rimmarsa.backend/internal/domain/entities"
)

// VendorRepository defines vendor data operations.
// Create and LinkIdentity return ErrPromoCodeTaken or ErrPhoneTaken on unique violations.
type VendorRepository interface {
	Create(ctx context.Context, vendor *entities.Vendor) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Vendor, error)
	GetByPhone(ctx context.Context, phone string) (*entities.Vendor, error)
	GetByEmail(ctx context.Context, email string) (*entities.Vendor, error)
	GetByPromoCode(ctx context.Context, code string) (*entities.Vendor, error)
	PromoCodeExists(ctx context.Context, code string) (bool, error)
	LinkIdentity(ctx context.Context, link entities.VendorLink) error
	UpdateSubscriptionEndDate(ctx context.Context, id uuid.UUID, end time.Time) error
}

// SubscriptionRepository defines subscription history data operations
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *entities.SubscriptionHistory) error
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*entities.SubscriptionHistory, error)
	// ExpireDue marks up to limit active rows that ended before now as expired
	ExpireDue(ctx context.Context, now time.Time, limit int) (int64, error)
}

// ReferralRepository defines referral data operations
type ReferralRepository interface {
	Create(ctx context.Context, referral *entities.Referral) error
	ListByReferrer(ctx context.Context, referrerID uuid.UUID) ([]*entities.Referral, error)
}
