package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePropertyRequest struct {
	Name      string `json:"name" validate:"required,min=2"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Country   string `json:"country"`
	MaxGuests int    `json:"max_guests" validate:"omitempty,gte=1"`
	Notes     string `json:"notes"`
}

type UpdatePropertyRequest struct {
	Id        uuid.UUID
	Name      string `json:"name" validate:"required,min=2"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Country   string `json:"country"`
	MaxGuests int    `json:"max_guests" validate:"omitempty,gte=1"`
	Notes     string `json:"notes"`
}

type PropertyResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	Country   string    `json:"country,omitempty"`
	MaxGuests int       `json:"max_guests"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
