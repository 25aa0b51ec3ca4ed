package model

import (
	"time"

	"github.com/google/uuid"
)

type Guest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	HostID     uuid.UUID `gorm:"type:uuid;not null;index"`
	FullName   string    `gorm:"type:varchar(255);not null"`
	Email      string    `gorm:"type:varchar(255);index"`
	Phone      string    `gorm:"type:varchar(64)"`
	DocumentID string    `gorm:"type:varchar(128)"`
	Notes      string    `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Guest) TableName() string {
	return "guests"
}
