package usecases

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	domainerrors "rimmarsa.backend/internal/domain/errors"
	"rimmarsa.backend/internal/domain/repositories"
)

// Accepts the legacy RIMM- codes and codes from PromoCodeGenerator
var promoCodePattern = regexp.MustCompile(`^(RIMM-[A-Z0-9]+|[A-Z0-9]{3,10})$`)

// PromoVendor is the vendor a valid promo code belongs to
type PromoVendor struct {
	ID           uuid.UUID `json:"id"`
	BusinessName string    `json:"business_name"`
	PromoCode    string    `json:"promo_code"`
}

// PromoValidation is the public answer for one promo code
type PromoValidation struct {
	Valid  bool         `json:"valid"`
	Vendor *PromoVendor `json:"vendor,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// PromoUsecase validates promo codes entered by the public
type PromoUsecase struct {
	vendorRepo repositories.VendorRepository
	metrics    MetricsRecorder
}

// NewPromoUsecase creates a new promo usecase
func NewPromoUsecase(vendorRepo repositories.VendorRepository, metrics MetricsRecorder) *PromoUsecase {
	return &PromoUsecase{vendorRepo: vendorRepo, metrics: metricsOrNoop(metrics)}
}

// Validate reports whether code belongs to an active approved vendor
func (u *PromoUsecase) Validate(ctx context.Context, code string) (*PromoValidation, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !promoCodePattern.MatchString(code) {
		return u.invalid("invalid promo code format"), nil
	}

	vendor, err := u.vendorRepo.GetByPromoCode(ctx, code)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return u.invalid("promo code not found"), nil
		}
		return nil, fmt.Errorf("look up promo code: %w", err)
	}
	if !vendor.IsActive || !vendor.IsApproved {
		return u.invalid("promo code is not active"), nil
	}

	u.metrics.PromoValidation(ResultValid)
	return &PromoValidation{
		Valid: true,
		Vendor: &PromoVendor{
			ID:           vendor.ID,
			BusinessName: vendor.BusinessName,
			PromoCode:    vendor.PromoCode.String,
		},
	}, nil
}

func (u *PromoUsecase) invalid(reason string) *PromoValidation {
	u.metrics.PromoValidation(ResultInvalid)
	return &PromoValidation{Valid: false, Error: reason}
}
