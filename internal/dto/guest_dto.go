package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateGuestRequest struct {
	FullName   string `json:"full_name" validate:"required,min=2"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
	DocumentId string `json:"document_id"`
	Notes      string `json:"notes"`
}

type UpdateGuestRequest struct {
	Id         uuid.UUID
	FullName   string `json:"full_name" validate:"required,min=2"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
	DocumentId string `json:"document_id"`
	Notes      string `json:"notes"`
}

type GuestResponse struct {
	Id         uuid.UUID `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	DocumentId string    `json:"document_id,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
