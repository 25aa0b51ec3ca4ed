package model

import (
	"time"

	"github.com/google/uuid"
)

type Property struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	HostID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Address   string    `gorm:"type:varchar(255)"`
	City      string    `gorm:"type:varchar(128)"`
	Country   string    `gorm:"type:varchar(128)"`
	MaxGuests int       `gorm:"default:2"`
	Notes     string    `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Property) TableName() string {
	return "properties"
}
