package entity

import (
	"time"

	"github.com/google/uuid"
)

type Guest struct {
	Id         uuid.UUID
	HostId     uuid.UUID
	FullName   string
	Email      string
	Phone      string
	DocumentId string
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
