package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Notification struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	TypeCode   string         `gorm:"type:varchar(64);not null"`
	Title      string         `gorm:"type:varchar(255)"`
	Message    string         `gorm:"type:text"`
	Metadata   datatypes.JSON `gorm:"type:jsonb"`
	EntityType string         `gorm:"type:varchar(64)"`
	EntityID   *uuid.UUID     `gorm:"type:uuid"`
	IsRead     bool           `gorm:"default:false;index"`
	CreatedAt  time.Time      `gorm:"index"`
}

func (Notification) TableName() string {
	return "notifications"
}
