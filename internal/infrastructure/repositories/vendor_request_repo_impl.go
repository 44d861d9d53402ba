package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"rimmarsa.backend/internal/domain/entities"
	domainrepos "rimmarsa.backend/internal/domain/repositories"
	"rimmarsa.backend/internal/infrastructure/models"
	"rimmarsa.backend/pkg/utils"
)

type vendorRequestRepo struct {
	db *gorm.DB
}

func NewVendorRequestRepository(db *gorm.DB) domainrepos.VendorRequestRepository {
	return &vendorRequestRepo{db: db}
}

// Create inserts a pending application. A second pending application for the same
// phone fails with ErrPhoneTaken through the partial unique index.
func (r *vendorRequestRepo) Create(ctx context.Context, req *entities.VendorRequest) error {
	if req.ID == uuid.Nil {
		req.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	if req.CreatedAt.IsZero() {
		req.CreatedAt = now
	}
	req.UpdatedAt = now
	if req.Status == "" {
		req.Status = entities.VendorRequestStatusPending
	}

	row := toVendorRequestModel(req)
	return mapUniqueViolation(GetDB(ctx, r.db).Create(row).Error)
}

func (r *vendorRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.VendorRequest, error) {
	var row models.VendorRequest
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	return toVendorRequestEntity(&row), nil
}

func (r *vendorRequestRepo) GetPendingByID(ctx context.Context, id uuid.UUID) (*entities.VendorRequest, error) {
	var row models.VendorRequest
	err := GetDB(ctx, r.db).
		Where("id = ? AND status = ?", id, string(entities.VendorRequestStatusPending)).
		First(&row).Error
	if err != nil {
		return nil, notFound(err)
	}
	return toVendorRequestEntity(&row), nil
}

func (r *vendorRequestRepo) ExistsPendingByPhone(ctx context.Context, phone string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.VendorRequest{}).
		Where("phone = ? AND status = ?", phone, string(entities.VendorRequestStatusPending)).
		Count(&count).Error
	return count > 0, err
}

func (r *vendorRequestRepo) List(ctx context.Context, filter entities.VendorRequestFilter, pagination utils.PaginationParams) ([]*entities.VendorRequest, int64, error) {
	var rows []models.VendorRequest
	var total int64

	query := GetDB(ctx, r.db).Model(&models.VendorRequest{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}
	if err := query.Preload("Region").Preload("City").Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.VendorRequest, 0, len(rows))
	for i := range rows {
		items = append(items, toVendorRequestEntity(&rows[i]))
	}
	return items, total, nil
}

func (r *vendorRequestRepo) MarkApproved(ctx context.Context, id, vendorID, adminID uuid.UUID, at time.Time) (bool, error) {
	return r.updatePending(ctx, id, map[string]interface{}{
		"status":      string(entities.VendorRequestStatusApproved),
		"vendor_id":   vendorID,
		"reviewed_at": at,
		"reviewed_by": adminID,
		"updated_at":  at,
	})
}

func (r *vendorRequestRepo) MarkRejected(ctx context.Context, id, adminID uuid.UUID, reason string, at time.Time) (bool, error) {
	return r.updatePending(ctx, id, map[string]interface{}{
		"status":           string(entities.VendorRequestStatusRejected),
		"rejection_reason": reason,
		"reviewed_at":      at,
		"reviewed_by":      adminID,
		"updated_at":       at,
	})
}

func (r *vendorRequestRepo) UpdatePendingPassword(ctx context.Context, id uuid.UUID, password string) (bool, error) {
	return r.updatePending(ctx, id, map[string]interface{}{
		"password":   password,
		"updated_at": time.Now(),
	})
}

func (r *vendorRequestRepo) updatePending(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (bool, error) {
	result := GetDB(ctx, r.db).Model(&models.VendorRequest{}).
		Where("id = ? AND status = ?", id, string(entities.VendorRequestStatusPending)).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func toVendorRequestModel(req *entities.VendorRequest) *models.VendorRequest {
	return &models.VendorRequest{
		ID:               req.ID,
		BusinessName:     req.BusinessName,
		OwnerName:        req.OwnerName,
		Phone:            req.Phone,
		Password:         req.Password.Ptr(),
		WhatsappNumber:   req.WhatsappNumber.Ptr(),
		RegionID:         req.RegionID,
		CityID:           req.CityID,
		Address:          req.Address.Ptr(),
		PackagePlan:      string(req.PackagePlan),
		PackagePrice:     req.PackagePrice,
		NNIImageURL:      req.NNIImageURL.Ptr(),
		PersonalImageURL: req.PersonalImageURL.Ptr(),
		StoreImageURL:    req.StoreImageURL.Ptr(),
		PaymentImageURL:  req.PaymentImageURL.Ptr(),
		ReferredByCode:   req.ReferredByCode.Ptr(),
		Status:           string(req.Status),
		RejectionReason:  req.RejectionReason.Ptr(),
		ReviewedAt:       req.ReviewedAt.Ptr(),
		ReviewedBy:       req.ReviewedBy,
		VendorID:         req.VendorID,
		CreatedAt:        req.CreatedAt,
		UpdatedAt:        req.UpdatedAt,
	}
}

func toVendorRequestEntity(m *models.VendorRequest) *entities.VendorRequest {
	req := &entities.VendorRequest{
		ID:               m.ID,
		BusinessName:     m.BusinessName,
		OwnerName:        m.OwnerName,
		Phone:            m.Phone,
		Password:         null.StringFromPtr(m.Password),
		WhatsappNumber:   null.StringFromPtr(m.WhatsappNumber),
		RegionID:         m.RegionID,
		CityID:           m.CityID,
		Address:          null.StringFromPtr(m.Address),
		PackagePlan:      entities.PackagePlan(m.PackagePlan),
		PackagePrice:     m.PackagePrice,
		NNIImageURL:      null.StringFromPtr(m.NNIImageURL),
		PersonalImageURL: null.StringFromPtr(m.PersonalImageURL),
		StoreImageURL:    null.StringFromPtr(m.StoreImageURL),
		PaymentImageURL:  null.StringFromPtr(m.PaymentImageURL),
		ReferredByCode:   null.StringFromPtr(m.ReferredByCode),
		Status:           entities.VendorRequestStatus(m.Status),
		RejectionReason:  null.StringFromPtr(m.RejectionReason),
		ReviewedAt:       null.TimeFromPtr(m.ReviewedAt),
		ReviewedBy:       m.ReviewedBy,
		VendorID:         m.VendorID,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.Region != nil {
		req.Region = toRegionEntity(m.Region)
	}
	if m.City != nil {
		req.City = toCityEntity(m.City)
	}
	return req
}
