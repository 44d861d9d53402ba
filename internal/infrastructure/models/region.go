package models

import "github.com/google/uuid"

type Region struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"type:varchar(100);not null"`
	NameAr   string    `gorm:"type:varchar(100)"`
	IsActive bool      `gorm:"not null"`
}

type City struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	RegionID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(100);not null"`
	NameAr   string    `gorm:"type:varchar(100)"`
	IsActive bool      `gorm:"not null"`
}

func (City) TableName() string {
	return "cities"
}
