package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	domainerrors "rimmarsa.backend/internal/domain/errors"
	"rimmarsa.backend/pkg/utils"
)

// VendorEmailDigits is how many trailing phone digits form the login email
const VendorEmailDigits = 8

// Vendor is an approved merchant account
type Vendor struct {
	ID                  uuid.UUID   `json:"id"`
	BusinessName        string      `json:"business_name"`
	OwnerName           string      `json:"owner_name"`
	Phone               string      `json:"phone"`
	Email               null.String `json:"email"`
	UserID              *uuid.UUID  `json:"user_id"`
	PromoCode           null.String `json:"promo_code"`
	IsActive            bool        `json:"is_active"`
	IsApproved          bool        `json:"is_approved"`
	ApprovedAt          null.Time   `json:"approved_at"`
	RegionID            *uuid.UUID  `json:"region_id"`
	CityID              *uuid.UUID  `json:"city_id"`
	Address             null.String `json:"address"`
	WhatsappNumber      null.String `json:"whatsapp_number"`
	LogoURL             null.String `json:"logo_url"`
	NNIImageURL         null.String `json:"nni_image_url"`
	PersonalImageURL    null.String `json:"personal_image_url"`
	StoreImageURL       null.String `json:"store_image_url"`
	PaymentImageURL     null.String `json:"payment_image_url"`
	SubscriptionEndDate null.Time   `json:"subscription_end_date"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// HasAccount reports whether the vendor is already linked to an identity user
func (v *Vendor) HasAccount() bool {
	return v.UserID != nil && *v.UserID != uuid.Nil
}

// CanLogin reports whether the vendor may sign in
func (v *Vendor) CanLogin() bool {
	return v.IsActive && v.IsApproved && v.HasAccount()
}

// NewVendorFromRequest copies the profile of an application into a fresh vendor row
func NewVendorFromRequest(req *VendorRequest, userID uuid.UUID, email, promoCode string, now time.Time) *Vendor {
	return &Vendor{
		ID:               utils.GenerateUUIDv7(),
		BusinessName:     req.BusinessName,
		OwnerName:        req.OwnerName,
		Phone:            req.Phone,
		Email:            null.StringFrom(email),
		UserID:           &userID,
		PromoCode:        null.StringFrom(promoCode),
		IsActive:         true,
		IsApproved:       true,
		ApprovedAt:       null.TimeFrom(now),
		RegionID:         req.RegionID,
		CityID:           req.CityID,
		Address:          req.Address,
		WhatsappNumber:   req.WhatsappNumber,
		NNIImageURL:      req.NNIImageURL,
		PersonalImageURL: req.PersonalImageURL,
		StoreImageURL:    req.StoreImageURL,
		PaymentImageURL:  req.PaymentImageURL,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// DeriveVendorEmail maps a phone number to the vendor login email.
// "+22237892800" with domain "rimmarsa.com" gives "37892800@vendor.rimmarsa.com".
func DeriveVendorEmail(phone, domain string) (string, error) {
	digits, ok := utils.LastDigits(phone, VendorEmailDigits)
	if !ok {
		return "", domainerrors.Validation("phone must contain at least 8 digits")
	}
	return fmt.Sprintf("%s@vendor.%s", digits, domain), nil
}

// VendorLink is the change applied when an existing vendor row receives its identity user
type VendorLink struct {
	VendorID   uuid.UUID
	UserID     uuid.UUID
	Email      string
	PromoCode  null.String
	ApprovedAt time.Time
}
