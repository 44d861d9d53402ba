package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"rimmarsa.backend/internal/domain/entities"
	domainerrors "rimmarsa.backend/internal/domain/errors"
	"rimmarsa.backend/internal/domain/repositories"
	"rimmarsa.backend/pkg/jwt"
	"rimmarsa.backend/pkg/logger"
	"rimmarsa.backend/pkg/utils"
)

// ApprovalConfig holds the values baked into vendor credentials
type ApprovalConfig struct {
	EmailDomain string
	LoginURL    string
}

// ApprovedVendor is the public part of the approved vendor
type ApprovedVendor struct {
	ID           uuid.UUID `json:"id"`
	BusinessName string    `json:"business_name"`
	Phone        string    `json:"phone"`
	PromoCode    string    `json:"promo_code"`
}

// VendorCredentials tells the admin how the vendor signs in. The password is never included.
type VendorCredentials struct {
	Phone    string `json:"phone"`
	LoginURL string `json:"login_url"`
}

// ApprovalResult is returned to the admin after a successful approval
type ApprovalResult struct {
	Vendor              ApprovedVendor    `json:"vendor"`
	Credentials         VendorCredentials `json:"credentials"`
	SubscriptionEndDate time.Time         `json:"subscription_end_date"`
}

// VendorApprovalUsecase turns pending vendor requests into vendor accounts
type VendorApprovalUsecase struct {
	requestRepo      repositories.VendorRequestRepository
	vendorRepo       repositories.VendorRepository
	subscriptionRepo repositories.SubscriptionRepository
	referralRepo     repositories.ReferralRepository
	identity         repositories.IdentityStore
	uow              repositories.UnitOfWork
	promo            *PromoCodeGenerator
	metrics          MetricsRecorder
	cfg              ApprovalConfig
	now              func() time.Time
}

// NewVendorApprovalUsecase creates a new vendor approval usecase
func NewVendorApprovalUsecase(
	requestRepo repositories.VendorRequestRepository,
	vendorRepo repositories.VendorRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	referralRepo repositories.ReferralRepository,
	identity repositories.IdentityStore,
	uow repositories.UnitOfWork,
	promo *PromoCodeGenerator,
	metrics MetricsRecorder,
	cfg ApprovalConfig,
) *VendorApprovalUsecase {
	if promo == nil {
		promo = NewPromoCodeGenerator()
	}
	if cfg.EmailDomain == "" {
		cfg.EmailDomain = DefaultVendorEmailDomain
	}
	if cfg.LoginURL == "" {
		cfg.LoginURL = DefaultVendorLoginURL
	}
	return &VendorApprovalUsecase{
		requestRepo:      requestRepo,
		vendorRepo:       vendorRepo,
		subscriptionRepo: subscriptionRepo,
		referralRepo:     referralRepo,
		identity:         identity,
		uow:              uow,
		promo:            promo,
		metrics:          metricsOrNoop(metrics),
		cfg:              cfg,
		now:              time.Now,
	}
}

// Approve creates the identity user and vendor for a pending request and marks it
// approved. When it fails the request stays pending and the identity user is removed.
func (u *VendorApprovalUsecase) Approve(ctx context.Context, requestID, adminID uuid.UUID) (*ApprovalResult, error) {
	result, err := u.approve(ctx, requestID, adminID)
	if err != nil {
		u.metrics.VendorApproval(ResultFailure)
		return nil, err
	}
	u.metrics.VendorApproval(ResultSuccess)
	return result, nil
}

func (u *VendorApprovalUsecase) approve(ctx context.Context, requestID, adminID uuid.UUID) (*ApprovalResult, error) {
	req, err := u.requestRepo.GetPendingByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("vendor request not found or already processed")
		}
		return nil, fmt.Errorf("load vendor request: %w", err)
	}

	if !req.HasPassword() {
		return nil, domainerrors.Validation("password required, reset it first")
	}

	email, err := entities.DeriveVendorEmail(req.Phone, u.cfg.EmailDomain)
	if err != nil {
		return nil, err
	}
	loginPhone, _ := utils.LastDigits(req.Phone, entities.VendorEmailDigits)

	existing, err := u.vendorRepo.GetByPhone(ctx, req.Phone)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, fmt.Errorf("load vendor by phone: %w", err)
	}
	if existing != nil && existing.HasAccount() {
		return nil, domainerrors.Conflict("vendor already has an account")
	}

	var sg saga
	metadata := map[string]string{
		"business_name":     req.BusinessName,
		"vendor_request_id": req.ID.String(),
	}
	user, err := u.identity.CreateUser(ctx, entities.CreateIdentityInput{
		Email:    email,
		Password: req.Password.String,
		Phone:    req.Phone,
		Role:     jwt.RoleVendor,
		Metadata: metadata,
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrConflict) {
			return nil, domainerrors.Conflict("an account already exists for " + email)
		}
		return nil, fmt.Errorf("create identity user: %w", err)
	}
	sg.onFailure("delete identity user", func(ctx context.Context) error {
		return u.identity.DeleteUser(ctx, user.ID)
	})

	now := u.now().UTC()
	vendorID, promoCode, err := u.persistVendor(ctx, req, existing, user.ID, email, adminID, now)
	if err != nil {
		sg.compensate(ctx)
		return nil, err
	}

	logger.Info(ctx, "Vendor request approved",
		zap.String("request_id", req.ID.String()),
		zap.String("vendor_id", vendorID.String()),
		zap.Bool("linked_existing", existing != nil),
	)

	u.stampIdentityMetadata(ctx, user.ID, metadata, vendorID, promoCode)
	endDate := u.recordSubscription(ctx, req, vendorID, now)
	u.creditReferral(ctx, req, vendorID, now)

	result := &ApprovalResult{
		Vendor: ApprovedVendor{
			ID:           vendorID,
			BusinessName: req.BusinessName,
			Phone:        req.Phone,
			PromoCode:    promoCode,
		},
		Credentials: VendorCredentials{
			Phone:    loginPhone,
			LoginURL: u.cfg.LoginURL,
		},
		SubscriptionEndDate: endDate,
	}

	vendor, err := u.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		logger.Warn(ctx, "Failed to re-fetch approved vendor", zap.String("vendor_id", vendorID.String()), zap.Error(err))
		return result, nil
	}
	result.Vendor.BusinessName = vendor.BusinessName
	result.Vendor.Phone = vendor.Phone
	result.Vendor.PromoCode = vendor.PromoCode.String
	return result, nil
}

// persistVendor writes the vendor row and marks the request approved in one
// transaction. A promo code collision rolls back and retries with a fresh code.
func (u *VendorApprovalUsecase) persistVendor(
	ctx context.Context,
	req *entities.VendorRequest,
	existing *entities.Vendor,
	userID uuid.UUID,
	email string,
	adminID uuid.UUID,
	now time.Time,
) (uuid.UUID, string, error) {
	for attempt := 1; ; attempt++ {
		var vendorID uuid.UUID
		var promoCode string

		err := u.uow.Do(ctx, func(txCtx context.Context) error {
			var err error
			if existing != nil {
				vendorID = existing.ID
				promoCode, err = u.linkExistingVendor(txCtx, existing, userID, email, now)
			} else {
				vendorID, promoCode, err = u.createVendor(txCtx, req, userID, email, now)
			}
			if err != nil {
				return err
			}

			updated, err := u.requestRepo.MarkApproved(txCtx, req.ID, vendorID, adminID, now)
			if err != nil {
				return fmt.Errorf("mark request approved: %w", err)
			}
			if !updated {
				return domainerrors.Conflict("vendor request was already processed")
			}
			return nil
		})
		if err == nil {
			return vendorID, promoCode, nil
		}

		switch {
		case errors.Is(err, domainerrors.ErrPromoCodeTaken) && attempt < PromoInsertAttempts:
			logger.Warn(ctx, "Promo code collided on insert, retrying",
				zap.String("promo_code", promoCode),
				zap.Int("attempt", attempt),
			)
			continue
		case errors.Is(err, domainerrors.ErrPhoneTaken):
			return uuid.Nil, "", domainerrors.Conflict("a vendor with this phone already exists")
		}
		return uuid.Nil, "", err
	}
}

func (u *VendorApprovalUsecase) createVendor(ctx context.Context, req *entities.VendorRequest, userID uuid.UUID, email string, now time.Time) (uuid.UUID, string, error) {
	code, err := u.promo.Generate(ctx, req.BusinessName, u.vendorRepo.PromoCodeExists)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("generate promo code: %w", err)
	}

	vendor := entities.NewVendorFromRequest(req, userID, email, code, now)
	if err := u.vendorRepo.Create(ctx, vendor); err != nil {
		return uuid.Nil, code, fmt.Errorf("create vendor: %w", err)
	}
	return vendor.ID, code, nil
}

// linkExistingVendor attaches the identity user to a vendor row created earlier and
// assigns a promo code when the row has none.
func (u *VendorApprovalUsecase) linkExistingVendor(ctx context.Context, vendor *entities.Vendor, userID uuid.UUID, email string, now time.Time) (string, error) {
	link := entities.VendorLink{
		VendorID:   vendor.ID,
		UserID:     userID,
		Email:      email,
		PromoCode:  vendor.PromoCode,
		ApprovedAt: now,
	}
	if !link.PromoCode.Valid || link.PromoCode.String == "" {
		code, err := u.promo.Generate(ctx, vendor.BusinessName, u.vendorRepo.PromoCodeExists)
		if err != nil {
			return "", fmt.Errorf("generate promo code: %w", err)
		}
		link.PromoCode = null.StringFrom(code)
	}

	if err := u.vendorRepo.LinkIdentity(ctx, link); err != nil {
		return link.PromoCode.String, fmt.Errorf("link vendor identity: %w", err)
	}
	return link.PromoCode.String, nil
}

// stampIdentityMetadata records the vendor id on the identity user. It is best effort:
// a failure is logged and the approval stands.
func (u *VendorApprovalUsecase) stampIdentityMetadata(ctx context.Context, userID uuid.UUID, base map[string]string, vendorID uuid.UUID, promoCode string) {
	metadata := make(map[string]string, len(base)+2)
	for k, v := range base {
		metadata[k] = v
	}
	metadata["vendor_id"] = vendorID.String()
	metadata["promo_code"] = promoCode

	if _, err := u.identity.UpdateUser(ctx, userID, entities.UpdateIdentityInput{Metadata: metadata}); err != nil {
		logger.Error(ctx, "Failed to stamp vendor id on identity user",
			zap.String("user_id", userID.String()),
			zap.String("vendor_id", vendorID.String()),
			zap.Error(err),
		)
	}
}

// recordSubscription is best effort: a failure is logged and the approval stands
func (u *VendorApprovalUsecase) recordSubscription(ctx context.Context, req *entities.VendorRequest, vendorID uuid.UUID, now time.Time) time.Time {
	sub := entities.NewSubscription(vendorID, req.PackagePlan, req.PackagePrice, now)
	if err := u.subscriptionRepo.Create(ctx, sub); err != nil {
		logger.Error(ctx, "Failed to create subscription",
			zap.String("vendor_id", vendorID.String()),
			zap.Error(err),
		)
		return sub.EndDate
	}
	if err := u.vendorRepo.UpdateSubscriptionEndDate(ctx, vendorID, sub.EndDate); err != nil {
		logger.Error(ctx, "Failed to update vendor subscription end date",
			zap.String("vendor_id", vendorID.String()),
			zap.Error(err),
		)
	}
	return sub.EndDate
}

// creditReferral is best effort: a failure is logged and the approval stands
func (u *VendorApprovalUsecase) creditReferral(ctx context.Context, req *entities.VendorRequest, vendorID uuid.UUID, now time.Time) {
	code := strings.TrimSpace(req.ReferredByCode.String)
	if !req.ReferredByCode.Valid || code == "" {
		return
	}

	referrer, err := u.vendorRepo.GetByPromoCode(ctx, code)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			logger.Info(ctx, "Referral code matches no vendor", zap.String("referral_code", code))
			return
		}
		logger.Error(ctx, "Failed to look up referrer", zap.String("referral_code", code), zap.Error(err))
		return
	}
	if referrer.ID == vendorID {
		return
	}

	if err := u.referralRepo.Create(ctx, entities.NewReferral(referrer.ID, vendorID, code, now)); err != nil {
		logger.Error(ctx, "Failed to create referral",
			zap.String("referrer_id", referrer.ID.String()),
			zap.String("vendor_id", vendorID.String()),
			zap.Error(err),
		)
	}
}

// Reject marks a pending request rejected. It reports false without error when the
// request was not pending.
func (u *VendorApprovalUsecase) Reject(ctx context.Context, requestID, adminID uuid.UUID, reason string) (bool, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return false, domainerrors.Validation("rejection_reason is required")
	}

	updated, err := u.requestRepo.MarkRejected(ctx, requestID, adminID, reason, u.now().UTC())
	if err != nil {
		return false, fmt.Errorf("mark request rejected: %w", err)
	}
	if updated {
		u.metrics.VendorRejection()
		logger.Info(ctx, "Vendor request rejected", zap.String("request_id", requestID.String()))
	}
	return updated, nil
}
