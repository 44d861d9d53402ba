package models

import (
	"time"

	"github.com/google/uuid"
)

type Vendor struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BusinessName        string     `gorm:"type:varchar(255);not null"`
	OwnerName           string     `gorm:"type:varchar(255);not null"`
	Phone               string     `gorm:"type:varchar(32);uniqueIndex:vendors_phone_key;not null"`
	Email               *string    `gorm:"type:varchar(255);index"`
	UserID              *uuid.UUID `gorm:"type:uuid;index"`
	PromoCode           *string    `gorm:"type:varchar(32);uniqueIndex:vendors_promo_code_key"`
	IsActive            bool       `gorm:"not null"`
	IsApproved          bool       `gorm:"not null;default:false"`
	ApprovedAt          *time.Time
	RegionID            *uuid.UUID `gorm:"type:uuid"`
	CityID              *uuid.UUID `gorm:"type:uuid"`
	Address             *string    `gorm:"type:text"`
	WhatsappNumber      *string    `gorm:"type:varchar(32)"`
	LogoURL             *string    `gorm:"type:text"`
	NNIImageURL         *string    `gorm:"column:nni_image_url;type:text"`
	PersonalImageURL    *string    `gorm:"type:text"`
	StoreImageURL       *string    `gorm:"type:text"`
	PaymentImageURL     *string    `gorm:"type:text"`
	SubscriptionEndDate *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type SubscriptionHistory struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	VendorID  uuid.UUID `gorm:"type:uuid;not null;index"`
	PlanType  string    `gorm:"type:varchar(20);not null"`
	Amount    float64   `gorm:"type:decimal(12,2);not null"`
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null;index"`
	Status    string    `gorm:"type:varchar(20);not null;default:'active';index"`
	CreatedAt time.Time
}

func (SubscriptionHistory) TableName() string {
	return "subscription_history"
}

type Referral struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReferrerID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ReferredVendorID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	ReferralCode     string    `gorm:"type:varchar(32);not null"`
	CommissionEarned float64   `gorm:"type:decimal(12,2);not null;default:0"`
	Status           string    `gorm:"type:varchar(20);not null"`
	CreatedAt        time.Time
}
