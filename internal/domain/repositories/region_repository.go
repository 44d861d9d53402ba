package repositories

import (
	"context"

	"github.com/google/uuid"
	"rimmarsa.backend/internal/domain/entities"
)

// RegionRepository defines region and city lookups
type RegionRepository interface {
	ListRegions(ctx context.Context, activeOnly bool) ([]*entities.Region, error)
	ListCities(ctx context.Context, regionID *uuid.UUID, activeOnly bool) ([]*entities.City, error)
}

// AdminRepository defines admin account lookups
type AdminRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Admin, error)
	GetByEmail(ctx context.Context, email string) (*entities.Admin, error)
}
