package entity

import (
	"time"

	"github.com/google/uuid"
)

type Property struct {
	Id        uuid.UUID
	HostId    uuid.UUID
	Name      string
	Address   string
	City      string
	Country   string
	MaxGuests int
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
