package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleHost  UserRole = "host"
	UserRoleAdmin UserRole = "admin"
)

// User is a Checkinly host account.
type User struct {
	Id           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
