package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByGuestID struct {
	GuestID uuid.UUID
}

func (s ByGuestID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("guest_id = ?", s.GuestID)
}

type ByPropertyID struct {
	PropertyID uuid.UUID
}

func (s ByPropertyID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("property_id = ?", s.PropertyID)
}

type DepositStatusIs struct {
	Status string
}

func (s DepositStatusIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// DescriptionSearch matches the free-text description, case-insensitive.
type DescriptionSearch struct {
	Term string
}

func (s DescriptionSearch) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("description ILIKE ?", "%"+s.Term+"%")
}

type AmountBetween struct {
	Min *int64
	Max *int64
}

func (s AmountBetween) Apply(db *gorm.DB) *gorm.DB {
	if s.Min != nil {
		db = db.Where("amount >= ?", *s.Min)
	}
	if s.Max != nil {
		db = db.Where("amount <= ?", *s.Max)
	}
	return db
}

type CreatedBetween struct {
	From *time.Time
	To   *time.Time
}

func (s CreatedBetween) Apply(db *gorm.DB) *gorm.DB {
	if s.From != nil {
		db = db.Where("created_at >= ?", *s.From)
	}
	if s.To != nil {
		db = db.Where("created_at <= ?", *s.To)
	}
	return db
}

type ByPaymentRef struct {
	PaymentRef string
}

func (s ByPaymentRef) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("external_payment_ref = ?", s.PaymentRef)
}
