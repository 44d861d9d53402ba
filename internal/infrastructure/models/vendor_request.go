package models

import (
	"time"

	"github.com/google/uuid"
)

type VendorRequest struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BusinessName     string     `gorm:"type:varchar(255);not null"`
	OwnerName        string     `gorm:"type:varchar(255);not null"`
	Phone            string     `gorm:"type:varchar(32);not null;index"`
	Password         *string    `gorm:"type:varchar(255)"`
	WhatsappNumber   *string    `gorm:"type:varchar(32)"`
	RegionID         *uuid.UUID `gorm:"type:uuid;index"`
	CityID           *uuid.UUID `gorm:"type:uuid;index"`
	Address          *string    `gorm:"type:text"`
	PackagePlan      string     `gorm:"type:varchar(20);not null"`
	PackagePrice     float64    `gorm:"type:decimal(12,2);not null"`
	NNIImageURL      *string    `gorm:"column:nni_image_url;type:text"`
	PersonalImageURL *string    `gorm:"type:text"`
	StoreImageURL    *string    `gorm:"type:text"`
	PaymentImageURL  *string    `gorm:"type:text"`
	ReferredByCode   *string    `gorm:"type:varchar(32)"`
	Status           string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	RejectionReason  *string    `gorm:"type:text"`
	ReviewedAt       *time.Time
	ReviewedBy       *uuid.UUID `gorm:"type:uuid"`
	VendorID         *uuid.UUID `gorm:"type:uuid"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Region *Region `gorm:"foreignKey:RegionID"`
	City   *City   `gorm:"foreignKey:CityID"`
}
