package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ArrivalGuide struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	PropertyID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title      string         `gorm:"type:varchar(255);not null"`
	Content    datatypes.JSON `gorm:"type:jsonb"`
	ShareToken string         `gorm:"type:varchar(64);uniqueIndex;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ArrivalGuide) TableName() string {
	return "arrival_guides"
}
