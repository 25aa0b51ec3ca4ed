package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type WebhookEvent struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	EventKey   string         `gorm:"type:varchar(64);index;not null"`
	EventType  string         `gorm:"type:varchar(64);not null"`
	ChargeRef  string         `gorm:"type:varchar(128);index"`
	RawPayload datatypes.JSON `gorm:"type:jsonb"`
	Processed  bool           `gorm:"default:false;not null"`
	ReceivedAt time.Time
}

func (WebhookEvent) TableName() string {
	return "webhook_events"
}
