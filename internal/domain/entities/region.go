package entities

import "github.com/google/uuid"

// Region is a Mauritanian administrative region (wilaya)
type Region struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	NameAr   string    `json:"name_ar"`
	IsActive bool      `json:"is_active"`
}

// City belongs to a region
type City struct {
	ID       uuid.UUID `json:"id"`
	RegionID uuid.UUID `json:"region_id"`
	Name     string    `json:"name"`
	NameAr   string    `json:"name_ar"`
	IsActive bool      `json:"is_active"`
}
