package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainerrors "rimmarsa.backend/internal/domain/errors"
	"rimmarsa.backend/internal/infrastructure/models"
)

func TestRegionRepo_ListRegionsAndCities(t *testing.T) {
	db := newTestDB(t)
	repo := NewRegionRepository(db)
	ctx := context.Background()

	nktt := models.Region{ID: uuid.New(), Name: "Nouakchott", NameAr: "نواكشوط", IsActive: true}
	adrar := models.Region{ID: uuid.New(), Name: "Adrar", NameAr: "أدرار", IsActive: false}
	require.NoError(t, db.Create(&nktt).Error)
	require.NoError(t, db.Create(&adrar).Error)
	require.NoError(t, db.Create(&models.City{ID: uuid.New(), RegionID: nktt.ID, Name: "Ksar", IsActive: true}).Error)
	require.NoError(t, db.Create(&models.City{ID: uuid.New(), RegionID: adrar.ID, Name: "Atar", IsActive: true}).Error)

	regions, err := repo.ListRegions(ctx, true)
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, "Nouakchott", regions[0].Name)

	regions, err = repo.ListRegions(ctx, false)
	require.NoError(t, err)
	assert.Len(t, regions, 2)

	cities, err := repo.ListCities(ctx, &nktt.ID, true)
	require.NoError(t, err)
	require.Len(t, cities, 1)
	assert.Equal(t, "Ksar", cities[0].Name)

	cities, err = repo.ListCities(ctx, nil, false)
	require.NoError(t, err)
	assert.Len(t, cities, 2)
}

func TestAdminRepo_GetByEmailAndID(t *testing.T) {
	db := newTestDB(t)
	repo := NewAdminRepository(db)
	ctx := context.Background()

	row := models.Admin{
		ID:           uuid.New(),
		Email:        "ops@rimmarsa.com",
		Name:         "Ops",
		PasswordHash: "hash",
		Role:         "super_admin",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, db.Create(&row).Error)

	got, err := repo.GetByEmail(ctx, "  OPS@rimmarsa.com ")
	require.NoError(t, err)
	assert.Equal(t, row.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)

	got, err = repo.GetByID(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, "ops@rimmarsa.com", got.Email)

	_, err = repo.GetByEmail(ctx, "nobody@rimmarsa.com")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
