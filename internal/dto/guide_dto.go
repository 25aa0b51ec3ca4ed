package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateGuideRequest struct {
	PropertyId uuid.UUID              `json:"property_id" validate:"required"`
	Title      string                 `json:"title" validate:"required,min=2"`
	Content    map[string]interface{} `json:"content" validate:"required"`
}

type UpdateGuideRequest struct {
	Id      uuid.UUID
	Title   string                 `json:"title" validate:"required,min=2"`
	Content map[string]interface{} `json:"content" validate:"required"`
}

type GuideResponse struct {
	Id         uuid.UUID              `json:"id"`
	PropertyId uuid.UUID              `json:"property_id"`
	Title      string                 `json:"title"`
	Content    map[string]interface{} `json:"content"`
	ShareURL   string                 `json:"share_url"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

type SendGuideRequest struct {
	GuestId uuid.UUID `json:"guest_id" validate:"required"`
}
