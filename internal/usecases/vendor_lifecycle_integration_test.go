package usecases_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"rimmarsa.backend/internal/domain/entities"
	domainerrors "rimmarsa.backend/internal/domain/errors"
	"rimmarsa.backend/internal/infrastructure/identity"
	"rimmarsa.backend/internal/infrastructure/models"
	"rimmarsa.backend/internal/infrastructure/repositories"
	"rimmarsa.backend/internal/usecases"
	"rimmarsa.backend/pkg/jwt"
)

type lifecycleEnv struct {
	db        *gorm.DB
	requests  *usecases.VendorRequestUsecase
	approvals *usecases.VendorApprovalUsecase
	auth      *usecases.AuthUsecase
	accounts  *usecases.VendorAccountUsecase
}

func newLifecycleEnv(t *testing.T) *lifecycleEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:lifecycle_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, models.AutoMigrate(db))

	requestRepo := repositories.NewVendorRequestRepository(db)
	vendorRepo := repositories.NewVendorRepository(db)
	identityStore := identity.NewDatabaseStore(db)
	subscriptionRepo := repositories.NewSubscriptionRepository(db)
	referralRepo := repositories.NewReferralRepository(db)

	return &lifecycleEnv{
		db:       db,
		requests: usecases.NewVendorRequestUsecase(requestRepo, repositories.NewRegionRepository(db)),
		approvals: usecases.NewVendorApprovalUsecase(
			requestRepo,
			vendorRepo,
			subscriptionRepo,
			referralRepo,
			identityStore,
			repositories.NewUnitOfWork(db),
			usecases.NewPromoCodeGenerator(),
			nil,
			usecases.ApprovalConfig{EmailDomain: "rimmarsa.com"},
		),
		auth: usecases.NewAuthUsecase(
			repositories.NewAdminRepository(db),
			vendorRepo,
			identityStore,
			jwt.NewJWTService("test-secret", 15*time.Minute, time.Hour),
			"rimmarsa.com",
		),
		accounts: usecases.NewVendorAccountUsecase(vendorRepo, subscriptionRepo, referralRepo),
	}
}

func TestVendorLifecycle_SubmitApproveLogin(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	referrer := models.Vendor{
		ID:           uuid.New(),
		BusinessName: "Shop Referrer",
		OwnerName:    "Sidi",
		Phone:        "22240000000",
		PromoCode:    strPtr("SHOP1234"),
		IsActive:     true,
		IsApproved:   true,
	}
	require.NoError(t, env.db.Create(&referrer).Error)

	req, err := env.requests.Submit(ctx, entities.VendorRequestInput{
		BusinessName:   "Boutique Nour",
		OwnerName:      "Aicha",
		Phone:          "+222 37 89 28 00",
		Password:       "secret1",
		PackagePlan:    entities.PackagePlanTwoMonths,
		PackagePrice:   1600,
		ReferredByCode: "shop1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "22237892800", req.Phone)

	_, err = env.requests.Submit(ctx, entities.VendorRequestInput{
		BusinessName: "Boutique Nour 2",
		OwnerName:    "Aicha",
		Phone:        "22237892800",
		Password:     "secret1",
		PackagePlan:  entities.PackagePlanOneMonth,
		PackagePrice: 800,
	})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	adminID := uuid.New()
	result, err := env.approvals.Approve(ctx, req.ID, adminID)
	require.NoError(t, err)
	assert.Equal(t, "37892800", result.Credentials.Phone)
	assert.Regexp(t, `^BOUTIQ[A-Z0-9]{4}$`, result.Vendor.PromoCode)

	var vendor models.Vendor
	require.NoError(t, env.db.First(&vendor, "id = ?", result.Vendor.ID).Error)
	assert.True(t, vendor.IsApproved)
	require.NotNil(t, vendor.UserID)
	require.NotNil(t, vendor.Email)
	assert.Equal(t, "37892800@vendor.rimmarsa.com", *vendor.Email)

	var authUser models.AuthUser
	require.NoError(t, env.db.First(&authUser, "id = ?", *vendor.UserID).Error)
	assert.Contains(t, authUser.Metadata, `"vendor_id":"`+vendor.ID.String()+`"`)
	assert.Contains(t, authUser.Metadata, `"business_name":"Boutique Nour"`)

	var subs []models.SubscriptionHistory
	require.NoError(t, env.db.Where("vendor_id = ?", vendor.ID).Find(&subs).Error)
	require.Len(t, subs, 1)
	assert.Equal(t, 1600.0, subs[0].Amount)
	assert.Equal(t, "active", subs[0].Status)
	assert.WithinDuration(t, subs[0].StartDate.Add(60*24*time.Hour), subs[0].EndDate, time.Second)

	var referrals []models.Referral
	require.NoError(t, env.db.Find(&referrals).Error)
	require.Len(t, referrals, 1)
	assert.Equal(t, referrer.ID, referrals[0].ReferrerID)
	assert.Equal(t, vendor.ID, referrals[0].ReferredVendorID)
	assert.Equal(t, 0.0, referrals[0].CommissionEarned)
	assert.Equal(t, "completed", referrals[0].Status)

	var stored models.VendorRequest
	require.NoError(t, env.db.First(&stored, "id = ?", req.ID).Error)
	assert.Equal(t, "approved", stored.Status)
	require.NotNil(t, stored.VendorID)
	assert.Equal(t, vendor.ID, *stored.VendorID)
	require.NotNil(t, stored.ReviewedBy)
	assert.Equal(t, adminID, *stored.ReviewedBy)

	_, err = env.approvals.Approve(ctx, req.ID, adminID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	var count int64
	require.NoError(t, env.db.Model(&models.Referral{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	resp, err := env.auth.VendorLogin(ctx, &entities.VendorLoginInput{Phone: "+22237892800", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, jwt.RoleVendor, resp.Role)
	assert.Equal(t, vendor.ID, resp.Vendor.ID)

	_, err = env.auth.VendorLogin(ctx, &entities.VendorLoginInput{Phone: "+22237892800", Password: "wrong-pass"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	profile, err := env.accounts.Profile(ctx, vendor.ID)
	require.NoError(t, err)
	require.Len(t, profile.Subscriptions, 1)
	assert.Equal(t, 1600.0, profile.Subscriptions[0].Amount)
	assert.Empty(t, profile.Referrals)

	referrerProfile, err := env.accounts.Profile(ctx, referrer.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	assert.Nil(t, referrerProfile)
}

func TestVendorLifecycle_MissingPasswordLeavesRequestPending(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	repo := repositories.NewVendorRequestRepository(env.db)
	req := &entities.VendorRequest{
		BusinessName: "Atelier Sahel",
		OwnerName:    "Moussa",
		Phone:        "22236000001",
		PackagePlan:  entities.PackagePlanOneMonth,
		PackagePrice: 800,
		Status:       entities.VendorRequestStatusPending,
	}
	require.NoError(t, repo.Create(ctx, req))

	_, err := env.approvals.Approve(ctx, req.ID, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	stored, err := repo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.VendorRequestStatusPending, stored.Status)

	require.NoError(t, env.requests.ResetPassword(ctx, req.ID, "newpass1"))
	stored, err = repo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, null.StringFrom("newpass1"), stored.Password)

	result, err := env.approvals.Approve(ctx, req.ID, uuid.New())
	require.NoError(t, err)
	assert.Regexp(t, `^ATELIE[A-Z0-9]{4}$`, result.Vendor.PromoCode)
}

func strPtr(s string) *string { return &s }
