package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"rimmarsa.backend/internal/domain/entities"
	domainerrors "rimmarsa.backend/internal/domain/errors"
	"rimmarsa.backend/internal/domain/repositories"
	"rimmarsa.backend/pkg/logger"
	"rimmarsa.backend/pkg/utils"
)

// VendorRequestUsecase handles vendor registration and the admin review queue
type VendorRequestUsecase struct {
	requestRepo repositories.VendorRequestRepository
	regionRepo  repositories.RegionRepository
	now         func() time.Time
}

// NewVendorRequestUsecase creates a new vendor request usecase
func NewVendorRequestUsecase(requestRepo repositories.VendorRequestRepository, regionRepo repositories.RegionRepository) *VendorRequestUsecase {
	return &VendorRequestUsecase{
		requestRepo: requestRepo,
		regionRepo:  regionRepo,
		now:         time.Now,
	}
}

// Submit stores a registration form as a pending request. Only one pending request
// may exist per phone.
func (u *VendorRequestUsecase) Submit(ctx context.Context, input entities.VendorRequestInput) (*entities.VendorRequest, error) {
	req, err := entities.NewVendorRequest(input, u.now().UTC())
	if err != nil {
		return nil, err
	}

	exists, err := u.requestRepo.ExistsPendingByPhone(ctx, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("check pending request: %w", err)
	}
	if exists {
		return nil, errPendingRequestExists()
	}

	if err := u.requestRepo.Create(ctx, req); err != nil {
		if errors.Is(err, domainerrors.ErrPhoneTaken) || errors.Is(err, domainerrors.ErrUniqueViolation) {
			return nil, errPendingRequestExists()
		}
		return nil, fmt.Errorf("create vendor request: %w", err)
	}

	logger.Info(ctx, "Vendor request submitted",
		zap.String("request_id", req.ID.String()),
		zap.String("plan", string(req.PackagePlan)),
		zap.Bool("referred", req.ReferredByCode.Valid),
	)
	return req, nil
}

func errPendingRequestExists() *domainerrors.AppError {
	return domainerrors.Conflict("a pending request already exists for this phone").
		WithArabic("يوجد طلب قيد المراجعة لهذا الرقم")
}

// List returns requests for the admin dashboard with region and city attached
func (u *VendorRequestUsecase) List(ctx context.Context, filter entities.VendorRequestFilter, pagination utils.PaginationParams) ([]*entities.VendorRequest, utils.PaginationMeta, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, utils.PaginationMeta{}, domainerrors.Validation("status must be pending, approved or rejected")
	}

	requests, total, err := u.requestRepo.List(ctx, filter, pagination)
	if err != nil {
		return nil, utils.PaginationMeta{}, fmt.Errorf("list vendor requests: %w", err)
	}
	return requests, utils.CalculateMeta(total, pagination.Page, pagination.Limit), nil
}

// ResetPassword replaces the password of a request still awaiting review
func (u *VendorRequestUsecase) ResetPassword(ctx context.Context, requestID uuid.UUID, password string) error {
	if len(password) < entities.MinPasswordLength {
		return domainerrors.Validation("password must be at least 6 characters")
	}

	updated, err := u.requestRepo.UpdatePendingPassword(ctx, requestID, password)
	if err != nil {
		return fmt.Errorf("reset request password: %w", err)
	}
	if !updated {
		return domainerrors.NotFound("vendor request not found or already processed")
	}

	logger.Info(ctx, "Vendor request password reset", zap.String("request_id", requestID.String()))
	return nil
}

// ListRegions returns the active regions offered by the registration form
func (u *VendorRequestUsecase) ListRegions(ctx context.Context) ([]*entities.Region, error) {
	return u.regionRepo.ListRegions(ctx, true)
}

// ListCities returns active cities, optionally limited to one region
func (u *VendorRequestUsecase) ListCities(ctx context.Context, regionID *uuid.UUID) ([]*entities.City, error) {
	return u.regionRepo.ListCities(ctx, regionID, true)
}
