package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

type OwnedByHost struct {
	HostID uuid.UUID
}

func (s OwnedByHost) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("host_id = ?", s.HostID)
}

type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}
