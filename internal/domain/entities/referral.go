package entities

import (
	"time"

	"github.com/google/uuid"
	"rimmarsa.backend/pkg/utils"
)

// ReferralStatusCompleted marks a referral credited at approval time
const ReferralStatusCompleted = "completed"

// Referral credits one vendor for having referred another
type Referral struct {
	ID               uuid.UUID `json:"id"`
	ReferrerID       uuid.UUID `json:"referrer_id"`
	ReferredVendorID uuid.UUID `json:"referred_vendor_id"`
	ReferralCode     string    `json:"referral_code"`
	CommissionEarned float64   `json:"commission_earned"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewReferral creates a completed referral with no commission
func NewReferral(referrerID, referredVendorID uuid.UUID, code string, now time.Time) *Referral {
	return &Referral{
		ID:               utils.GenerateUUIDv7(),
		ReferrerID:       referrerID,
		ReferredVendorID: referredVendorID,
		ReferralCode:     code,
		CommissionEarned: 0,
		Status:           ReferralStatusCompleted,
		CreatedAt:        now,
	}
}
