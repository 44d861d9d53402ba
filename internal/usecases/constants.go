package usecases

import "time"

// Vendor accounts
const (
	DefaultVendorEmailDomain = "rimmarsa.com"
	DefaultVendorLoginURL    = "https://www.rimmarsa.com/vendor/login"
)

// PromoInsertAttempts bounds how often an approval regenerates a promo code after the
// vendor insert hit the promo_code unique constraint
const PromoInsertAttempts = 3

// Upload tokens
const (
	DefaultUploadTokenMaxUploads = 10
	DefaultUploadTokenTTL        = 60 * time.Minute
	MaxUploadTokenUploads        = 50
	MaxUploadTokenTTL            = 7 * 24 * time.Hour
)

// Metric result labels
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultRejected = "rejected"
	ResultValid    = "valid"
	ResultInvalid  = "invalid"
)
