package entities

import (
	"time"

	"github.com/google/uuid"
)

// UploadToken authorizes a bounded number of image uploads until it expires
type UploadToken struct {
	ID              uuid.UUID  `json:"id"`
	Token           string     `json:"token"`
	VendorRequestID *uuid.UUID `json:"vendor_request_id"`
	IsActive        bool       `json:"is_active"`
	ExpiresAt       time.Time  `json:"expires_at"`
	MaxUploads      int        `json:"max_uploads"`
	UploadsUsed     int        `json:"uploads_used"`
	CreatedBy       *uuid.UUID `json:"created_by"`
	CreatedAt       time.Time  `json:"created_at"`
}

// IsExpired reports whether the token expired at now
func (t *UploadToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// IsExhausted reports whether no uploads are left
func (t *UploadToken) IsExhausted() bool {
	return t.UploadsUsed >= t.MaxUploads
}

// Remaining returns how many uploads are left
func (t *UploadToken) Remaining() int {
	if t.IsExhausted() {
		return 0
	}
	return t.MaxUploads - t.UploadsUsed
}

// UploadTokenInput is the admin request to issue a token
type UploadTokenInput struct {
	VendorRequestID *uuid.UUID `json:"vendor_request_id"`
	MaxUploads      int        `json:"max_uploads"`
	TTLMinutes      int        `json:"ttl_minutes"`
}

// ImageType names what an uploaded vendor image shows
type ImageType string

const (
	ImageTypeNNI      ImageType = "nni"
	ImageTypePersonal ImageType = "personal"
	ImageTypeStore    ImageType = "store"
	ImageTypePayment  ImageType = "payment"
	ImageTypeLogo     ImageType = "logo"
)

// Valid reports whether t is an accepted image type
func (t ImageType) Valid() bool {
	switch t {
	case ImageTypeNNI, ImageTypePersonal, ImageTypeStore, ImageTypePayment, ImageTypeLogo:
		return true
	}
	return false
}
