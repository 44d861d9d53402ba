package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	domainerrors "rimmarsa.backend/internal/domain/errors"
	"rimmarsa.backend/pkg/utils"
)

// VendorRequestStatus represents the review state of a vendor application
type VendorRequestStatus string

const (
	VendorRequestStatusPending  VendorRequestStatus = "pending"
	VendorRequestStatusApproved VendorRequestStatus = "approved"
	VendorRequestStatusRejected VendorRequestStatus = "rejected"
)

// Valid reports whether s is a known status
func (s VendorRequestStatus) Valid() bool {
	switch s {
	case VendorRequestStatusPending, VendorRequestStatusApproved, VendorRequestStatusRejected:
		return true
	}
	return false
}

// PackagePlan is the subscription package chosen at registration
type PackagePlan string

const (
	PackagePlanOneMonth  PackagePlan = "1_month"
	PackagePlanTwoMonths PackagePlan = "2_months"
)

// Valid reports whether p is a known plan
func (p PackagePlan) Valid() bool {
	return p == PackagePlanOneMonth || p == PackagePlanTwoMonths
}

// Period returns the subscription length bought by the plan.
// Anything other than 2_months is treated as one month.
func (p PackagePlan) Period() time.Duration {
	if p == PackagePlanTwoMonths {
		return 60 * 24 * time.Hour
	}
	return 30 * 24 * time.Hour
}

// MinPasswordLength applies to passwords captured at registration and admin resets
const MinPasswordLength = 6

// VendorRequest is a prospective vendor's application awaiting admin review
type VendorRequest struct {
	ID               uuid.UUID           `json:"id"`
	BusinessName     string              `json:"business_name"`
	OwnerName        string              `json:"owner_name"`
	Phone            string              `json:"phone"`
	Password         null.String         `json:"-"`
	WhatsappNumber   null.String         `json:"whatsapp_number"`
	RegionID         *uuid.UUID          `json:"region_id"`
	CityID           *uuid.UUID          `json:"city_id"`
	Address          null.String         `json:"address"`
	PackagePlan      PackagePlan         `json:"package_plan"`
	PackagePrice     float64             `json:"package_price"`
	NNIImageURL      null.String         `json:"nni_image_url"`
	PersonalImageURL null.String         `json:"personal_image_url"`
	StoreImageURL    null.String         `json:"store_image_url"`
	PaymentImageURL  null.String         `json:"payment_image_url"`
	ReferredByCode   null.String         `json:"referred_by_code"`
	Status           VendorRequestStatus `json:"status"`
	RejectionReason  null.String         `json:"rejection_reason"`
	ReviewedAt       null.Time           `json:"reviewed_at"`
	ReviewedBy       *uuid.UUID          `json:"reviewed_by"`
	VendorID         *uuid.UUID          `json:"vendor_id"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`

	Region *Region `json:"region,omitempty"`
	City   *City   `json:"city,omitempty"`
}

// HasPassword reports whether a password was captured for identity creation
func (r *VendorRequest) HasPassword() bool {
	return r.Password.Valid && r.Password.String != ""
}

// IsPending reports whether the request still awaits review
func (r *VendorRequest) IsPending() bool {
	return r.Status == VendorRequestStatusPending
}

// VendorRequestInput is the public registration form
type VendorRequestInput struct {
	BusinessName     string      `json:"business_name" binding:"required"`
	OwnerName        string      `json:"owner_name" binding:"required"`
	Phone            string      `json:"phone" binding:"required"`
	Password         string      `json:"password" binding:"required"`
	WhatsappNumber   string      `json:"whatsapp_number"`
	RegionID         *uuid.UUID  `json:"region_id"`
	CityID           *uuid.UUID  `json:"city_id"`
	Address          string      `json:"address"`
	PackagePlan      PackagePlan `json:"package_plan" binding:"required"`
	PackagePrice     float64     `json:"package_price"`
	NNIImageURL      string      `json:"nni_image_url"`
	PersonalImageURL string      `json:"personal_image_url"`
	StoreImageURL    string      `json:"store_image_url"`
	PaymentImageURL  string      `json:"payment_image_url"`
	ReferredByCode   string      `json:"referred_by_code"`
}

// NewVendorRequest validates the form and builds a pending request.
// The phone is normalized to digits and the referral code to upper case.
func NewVendorRequest(input VendorRequestInput, now time.Time) (*VendorRequest, error) {
	businessName := strings.TrimSpace(input.BusinessName)
	ownerName := strings.TrimSpace(input.OwnerName)
	phone := utils.DigitsOnly(input.Phone)

	switch {
	case businessName == "":
		return nil, domainerrors.Validation("business_name is required")
	case ownerName == "":
		return nil, domainerrors.Validation("owner_name is required")
	case len(phone) < 8:
		return nil, domainerrors.Validation("phone must contain at least 8 digits")
	case len(input.Password) < MinPasswordLength:
		return nil, domainerrors.Validation("password must be at least 6 characters")
	case !input.PackagePlan.Valid():
		return nil, domainerrors.Validation("package_plan must be 1_month or 2_months")
	case input.PackagePrice <= 0:
		return nil, domainerrors.Validation("package_price must be positive")
	}

	return &VendorRequest{
		ID:               utils.GenerateUUIDv7(),
		BusinessName:     businessName,
		OwnerName:        ownerName,
		Phone:            phone,
		Password:         null.StringFrom(input.Password),
		WhatsappNumber:   optionalString(utils.DigitsOnly(input.WhatsappNumber)),
		RegionID:         input.RegionID,
		CityID:           input.CityID,
		Address:          optionalString(input.Address),
		PackagePlan:      input.PackagePlan,
		PackagePrice:     input.PackagePrice,
		NNIImageURL:      optionalString(input.NNIImageURL),
		PersonalImageURL: optionalString(input.PersonalImageURL),
		StoreImageURL:    optionalString(input.StoreImageURL),
		PaymentImageURL:  optionalString(input.PaymentImageURL),
		ReferredByCode:   optionalString(strings.ToUpper(input.ReferredByCode)),
		Status:           VendorRequestStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// VendorRequestFilter narrows the admin listing
type VendorRequestFilter struct {
	Status VendorRequestStatus
}

func optionalString(s string) null.String {
	s = strings.TrimSpace(s)
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
