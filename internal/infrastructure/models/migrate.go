package models

import (
	"fmt"

	"gorm.io/gorm"
)

// PendingPhoneIndex keeps one pending application per phone
const PendingPhoneIndex = "vendor_requests_pending_phone_key"

// AutoMigrate creates or updates every table and the partial unique index
// that GORM tags cannot express.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Region{},
		&City{},
		&Admin{},
		&AuthUser{},
		&VendorRequest{},
		&Vendor{},
		&SubscriptionHistory{},
		&Referral{},
		&UploadToken{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	stmt := fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s ON vendor_requests (phone) WHERE status = 'pending'",
		PendingPhoneIndex,
	)
	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("create %s: %w", PendingPhoneIndex, err)
	}
	return nil
}
