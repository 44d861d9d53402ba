package entities

import (
	"time"

	"github.com/google/uuid"
	"rimmarsa.backend/pkg/utils"
)

// SubscriptionStatus represents the lifecycle of a purchased plan period
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// SubscriptionHistory is one purchased plan period of a vendor
type SubscriptionHistory struct {
	ID        uuid.UUID          `json:"id"`
	VendorID  uuid.UUID          `json:"vendor_id"`
	PlanType  PackagePlan        `json:"plan_type"`
	Amount    float64            `json:"amount"`
	StartDate time.Time          `json:"start_date"`
	EndDate   time.Time          `json:"end_date"`
	Status    SubscriptionStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
}

// NewSubscription starts an active period at now lasting plan.Period()
func NewSubscription(vendorID uuid.UUID, plan PackagePlan, amount float64, now time.Time) *SubscriptionHistory {
	return &SubscriptionHistory{
		ID:        utils.GenerateUUIDv7(),
		VendorID:  vendorID,
		PlanType:  plan,
		Amount:    amount,
		StartDate: now,
		EndDate:   now.Add(plan.Period()),
		Status:    SubscriptionStatusActive,
		CreatedAt: now,
	}
}
