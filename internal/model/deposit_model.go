package model

import (
	"time"

	"github.com/google/uuid"
)

type Deposit struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Amount              int64     `gorm:"not null"`
	Currency            string    `gorm:"type:varchar(8);not null"`
	Status              string    `gorm:"type:varchar(32);not null;index"`
	RefundableRemaining int64     `gorm:"not null"`
	ExternalChargeRef   string    `gorm:"type:varchar(128);not null;index"`
	ExternalPaymentRef  string    `gorm:"type:varchar(128);not null"`
	GuestID             uuid.UUID `gorm:"type:uuid;not null;index"`
	PropertyID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Description         string    `gorm:"type:text"`
	CreatedAt           time.Time `gorm:"index"`
	UpdatedAt           time.Time

	// Relations
	Refunds  []DepositRefund `gorm:"foreignKey:DepositID"`
	Guest    Guest           `gorm:"foreignKey:GuestID"`
	Property Property        `gorm:"foreignKey:PropertyID"`
}

func (Deposit) TableName() string {
	return "deposits"
}

type DepositRefund struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	DepositID         uuid.UUID `gorm:"type:uuid;not null;index"`
	ExternalRefundRef string    `gorm:"type:varchar(128);not null"`
	Amount            int64     `gorm:"not null"`
	Reason            string    `gorm:"type:text"`
	CreatedAt         time.Time
}

func (DepositRefund) TableName() string {
	return "deposit_refunds"
}
