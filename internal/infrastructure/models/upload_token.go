package models

import (
	"time"

	"github.com/google/uuid"
)

type UploadToken struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Token           string     `gorm:"type:varchar(64);uniqueIndex;not null"`
	VendorRequestID *uuid.UUID `gorm:"type:uuid;index"`
	IsActive        bool       `gorm:"not null"`
	ExpiresAt       time.Time  `gorm:"not null"`
	MaxUploads      int        `gorm:"not null"`
	UploadsUsed     int        `gorm:"not null;default:0"`
	CreatedBy       *uuid.UUID `gorm:"type:uuid"`
	CreatedAt       time.Time
}
