package usecases_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"rimmarsa.backend/internal/domain/entities"
	"rimmarsa.backend/pkg/utils"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock VendorRequestRepository
type MockVendorRequestRepository struct {
	mock.Mock
}

func (m *MockVendorRequestRepository) Create(ctx context.Context, req *entities.VendorRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockVendorRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.VendorRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VendorRequest), args.Error(1)
}

func (m *MockVendorRequestRepository) GetPendingByID(ctx context.Context, id uuid.UUID) (*entities.VendorRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VendorRequest), args.Error(1)
}

func (m *MockVendorRequestRepository) ExistsPendingByPhone(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockVendorRequestRepository) List(ctx context.Context, filter entities.VendorRequestFilter, pagination utils.PaginationParams) ([]*entities.VendorRequest, int64, error) {
	args := m.Called(ctx, filter, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.VendorRequest), args.Get(1).(int64), args.Error(2)
}

func (m *MockVendorRequestRepository) MarkApproved(ctx context.Context, id, vendorID, adminID uuid.UUID, at time.Time) (bool, error) {
	args := m.Called(ctx, id, vendorID, adminID, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockVendorRequestRepository) MarkRejected(ctx context.Context, id, adminID uuid.UUID, reason string, at time.Time) (bool, error) {
	args := m.Called(ctx, id, adminID, reason, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockVendorRequestRepository) UpdatePendingPassword(ctx context.Context, id uuid.UUID, password string) (bool, error) {
	args := m.Called(ctx, id, password)
	return args.Bool(0), args.Error(1)
}

// Mock VendorRepository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) Create(ctx context.Context, vendor *entities.Vendor) error {
	return m.Called(ctx, vendor).Error(0)
}

func (m *MockVendorRepository) vendorResult(args mock.Arguments) (*entities.Vendor, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Vendor), args.Error(1)
}

func (m *MockVendorRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Vendor, error) {
	return m.vendorResult(m.Called(ctx, id))
}

func (m *MockVendorRepository) GetByPhone(ctx context.Context, phone string) (*entities.Vendor, error) {
	return m.vendorResult(m.Called(ctx, phone))
}

func (m *MockVendorRepository) GetByEmail(ctx context.Context, email string) (*entities.Vendor, error) {
	return m.vendorResult(m.Called(ctx, email))
}

func (m *MockVendorRepository) GetByPromoCode(ctx context.Context, code string) (*entities.Vendor, error) {
	return m.vendorResult(m.Called(ctx, code))
}

func (m *MockVendorRepository) PromoCodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockVendorRepository) LinkIdentity(ctx context.Context, link entities.VendorLink) error {
	return m.Called(ctx, link).Error(0)
}

func (m *MockVendorRepository) UpdateSubscriptionEndDate(ctx context.Context, id uuid.UUID, end time.Time) error {
	return m.Called(ctx, id, end).Error(0)
}

// Mock SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, sub *entities.SubscriptionHistory) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *MockSubscriptionRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*entities.SubscriptionHistory, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SubscriptionHistory), args.Error(1)
}

func (m *MockSubscriptionRepository) ExpireDue(ctx context.Context, now time.Time, limit int) (int64, error) {
	args := m.Called(ctx, now, limit)
	return args.Get(0).(int64), args.Error(1)
}

// Mock ReferralRepository
type MockReferralRepository struct {
	mock.Mock
}

func (m *MockReferralRepository) Create(ctx context.Context, referral *entities.Referral) error {
	return m.Called(ctx, referral).Error(0)
}

func (m *MockReferralRepository) ListByReferrer(ctx context.Context, referrerID uuid.UUID) ([]*entities.Referral, error) {
	args := m.Called(ctx, referrerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Referral), args.Error(1)
}

// Mock UploadTokenRepository
type MockUploadTokenRepository struct {
	mock.Mock
}

func (m *MockUploadTokenRepository) Create(ctx context.Context, token *entities.UploadToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockUploadTokenRepository) GetByToken(ctx context.Context, token string) (*entities.UploadToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UploadToken), args.Error(1)
}

func (m *MockUploadTokenRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUploadTokenRepository) IncrementUsage(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// Mock RegionRepository
type MockRegionRepository struct {
	mock.Mock
}

func (m *MockRegionRepository) ListRegions(ctx context.Context, activeOnly bool) ([]*entities.Region, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]*entities.Region), args.Error(1)
}

func (m *MockRegionRepository) ListCities(ctx context.Context, regionID *uuid.UUID, activeOnly bool) ([]*entities.City, error) {
	args := m.Called(ctx, regionID, activeOnly)
	return args.Get(0).([]*entities.City), args.Error(1)
}

// Mock AdminRepository
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Admin), args.Error(1)
}

func (m *MockAdminRepository) GetByEmail(ctx context.Context, email string) (*entities.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Admin), args.Error(1)
}

// Mock IdentityStore
type MockIdentityStore struct {
	mock.Mock
}

func (m *MockIdentityStore) identityResult(args mock.Arguments) (*entities.IdentityUser, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.IdentityUser), args.Error(1)
}

func (m *MockIdentityStore) CreateUser(ctx context.Context, input entities.CreateIdentityInput) (*entities.IdentityUser, error) {
	return m.identityResult(m.Called(ctx, input))
}

func (m *MockIdentityStore) UpdateUser(ctx context.Context, id uuid.UUID, input entities.UpdateIdentityInput) (*entities.IdentityUser, error) {
	return m.identityResult(m.Called(ctx, id, input))
}

func (m *MockIdentityStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockIdentityStore) VerifyPassword(ctx context.Context, email, password string) (*entities.IdentityUser, error) {
	return m.identityResult(m.Called(ctx, email, password))
}

// Mock ObjectStorage
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, key, contentType, data)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// recordingMetrics counts events by name
type recordingMetrics struct {
	mu     sync.Mutex
	events map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{events: map[string]int{}}
}

func (r *recordingMetrics) add(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[name]++
}

func (r *recordingMetrics) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[name]
}

func (r *recordingMetrics) VendorApproval(result string) { r.add("approval:" + result) }
func (r *recordingMetrics) VendorRejection() { r.add("rejection") }
func (r *recordingMetrics) Upload(result string) { r.add("upload:" + result) }
func (r *recordingMetrics) PromoValidation(result string) { r.add("promo:" + result) }
