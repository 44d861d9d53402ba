package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"rimmarsa.backend/internal/domain/entities"
	domainerrors "rimmarsa.backend/internal/domain/errors"
)

func TestSubscriptionRepo_CreateListAndExpire(t *testing.T) {
	db := newTestDB(t)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	vendorID := uuid.New()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	old := entities.NewSubscription(vendorID, entities.PackagePlanOneMonth, 800, now.Add(-40*24*time.Hour))
	current := entities.NewSubscription(vendorID, entities.PackagePlanTwoMonths, 1600, now.Add(-time.Hour))
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, repo.Create(ctx, current))

	items, err := repo.ListByVendor(ctx, vendorID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, current.ID, items[0].ID)
	assert.Equal(t, 1600.0, items[0].Amount)

	expired, err := repo.ExpireDue(ctx, now, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	items, err = repo.ListByVendor(ctx, vendorID)
	require.NoError(t, err)
	assert.Equal(t, entities.SubscriptionStatusActive, items[0].Status)
	assert.Equal(t, entities.SubscriptionStatusExpired, items[1].Status)

	expired, err = repo.ExpireDue(ctx, now, 100)
	require.NoError(t, err)
	assert.Zero(t, expired)
}

func TestSubscriptionRepo_ExpireDueHonoursBatchSize(t *testing.T) {
	db := newTestDB(t)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		sub := entities.NewSubscription(uuid.New(), entities.PackagePlanOneMonth, 800, now.Add(-31*24*time.Hour))
		require.NoError(t, repo.Create(ctx, sub))
	}

	n, err := repo.ExpireDue(ctx, now, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.ExpireDue(ctx, now, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestReferralRepo_CreateOncePerReferredVendor(t *testing.T) {
	db := newTestDB(t)
	repo := NewReferralRepository(db)
	ctx := context.Background()

	referrer, referred := uuid.New(), uuid.New()
	ref := entities.NewReferral(referrer, referred, "NOUR1234", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, ref))

	dup := entities.NewReferral(referrer, referred, "NOUR1234", time.Now().UTC())
	assert.ErrorIs(t, repo.Create(ctx, dup), domainerrors.ErrUniqueViolation)

	items, err := repo.ListByReferrer(ctx, referrer)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, referred, items[0].ReferredVendorID)
	assert.Zero(t, items[0].CommissionEarned)
	assert.Equal(t, entities.ReferralStatusCompleted, items[0].Status)
}
