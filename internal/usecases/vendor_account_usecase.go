package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"rimmarsa.backend/internal/domain/entities"
	domainerrors "rimmarsa.backend/internal/domain/errors"
	"rimmarsa.backend/internal/domain/repositories"
)

// VendorProfile is what a signed-in vendor sees about their own account
type VendorProfile struct {
	Vendor        *entities.Vendor                `json:"vendor"`
	Subscriptions []*entities.SubscriptionHistory `json:"subscriptions"`
	Referrals     []*entities.Referral            `json:"referrals"`
}

// VendorAccountUsecase serves the vendor's own account data
type VendorAccountUsecase struct {
	vendorRepo       repositories.VendorRepository
	subscriptionRepo repositories.SubscriptionRepository
	referralRepo     repositories.ReferralRepository
}

// NewVendorAccountUsecase creates a new vendor account usecase
func NewVendorAccountUsecase(
	vendorRepo repositories.VendorRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	referralRepo repositories.ReferralRepository,
) *VendorAccountUsecase {
	return &VendorAccountUsecase{
		vendorRepo:       vendorRepo,
		subscriptionRepo: subscriptionRepo,
		referralRepo:     referralRepo,
	}
}

// Profile returns the vendor with its subscription history and the referrals it earned.
// A vendor that was deactivated after its token was issued gets Forbidden.
func (u *VendorAccountUsecase) Profile(ctx context.Context, vendorID uuid.UUID) (*VendorProfile, error) {
	vendor, err := u.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("vendor not found")
		}
		return nil, fmt.Errorf("load vendor: %w", err)
	}
	if !vendor.CanLogin() {
		return nil, domainerrors.Forbidden("vendor account is not active").
			WithArabic("حساب البائع غير مفعل")
	}

	subs, err := u.subscriptionRepo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	referrals, err := u.referralRepo.ListByReferrer(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list referrals: %w", err)
	}

	if subs == nil {
		subs = []*entities.SubscriptionHistory{}
	}
	if referrals == nil {
		referrals = []*entities.Referral{}
	}
	return &VendorProfile{Vendor: vendor, Subscriptions: subs, Referrals: referrals}, nil
}
