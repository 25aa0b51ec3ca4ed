package entity

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	Id         uuid.UUID              `json:"id"`
	UserId     uuid.UUID              `json:"user_id"`
	TypeCode   string                 `json:"type_code"`
	Title      string                 `json:"title"`
	Message    string                 `json:"message"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	EntityType string                 `json:"entity_type,omitempty"`
	EntityId   *uuid.UUID             `json:"entity_id,omitempty"`
	IsRead     bool                   `json:"is_read"`
	CreatedAt  time.Time              `json:"created_at"`
}
