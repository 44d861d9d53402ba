package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"rimmarsa.backend/internal/domain/entities"
	domainrepos "rimmarsa.backend/internal/domain/repositories"
	"rimmarsa.backend/internal/infrastructure/models"
)

type regionRepo struct {
	db *gorm.DB
}

func NewRegionRepository(db *gorm.DB) domainrepos.RegionRepository {
	return &regionRepo{db: db}
}

func (r *regionRepo) ListRegions(ctx context.Context, activeOnly bool) ([]*entities.Region, error) {
	var rows []models.Region
	query := GetDB(ctx, r.db)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.Region, 0, len(rows))
	for i := range rows {
		items = append(items, toRegionEntity(&rows[i]))
	}
	return items, nil
}

func (r *regionRepo) ListCities(ctx context.Context, regionID *uuid.UUID, activeOnly bool) ([]*entities.City, error) {
	var rows []models.City
	query := GetDB(ctx, r.db)
	if regionID != nil {
		query = query.Where("region_id = ?", *regionID)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.City, 0, len(rows))
	for i := range rows {
		items = append(items, toCityEntity(&rows[i]))
	}
	return items, nil
}

func toRegionEntity(m *models.Region) *entities.Region {
	return &entities.Region{ID: m.ID, Name: m.Name, NameAr: m.NameAr, IsActive: m.IsActive}
}

func toCityEntity(m *models.City) *entities.City {
	return &entities.City{ID: m.ID, RegionID: m.RegionID, Name: m.Name, NameAr: m.NameAr, IsActive: m.IsActive}
}
