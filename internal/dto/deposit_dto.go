package dto

import (
	"time"

	"github.com/google/uuid"
)

type CaptureDepositRequest struct {
	Amount          int64     `json:"amount" validate:"required,gt=0"`
	Currency        string    `json:"currency"`
	GuestId         uuid.UUID `json:"guestId" validate:"required"`
	PropertyId      uuid.UUID `json:"propertyId" validate:"required"`
	PaymentMethodId string    `json:"paymentMethodId" validate:"required"`
	CustomerId      string    `json:"customerId"`
	Description     string    `json:"description"`
}

type RefundDepositRequest struct {
	// Nil means "refund everything still refundable".
	Amount *int64 `json:"amount" validate:"omitempty,gt=0"`
	Reason string `json:"reason"`
}

type RefundDepositResponse struct {
	Ok                  bool      `json:"ok"`
	RefundId            uuid.UUID `json:"refund_id"`
	RefundableRemaining int64     `json:"refundable_remaining"`
	Status              string    `json:"status"`
}

type DepositRefundDTO struct {
	Id                uuid.UUID `json:"id"`
	ExternalRefundRef string    `json:"external_refund_reference"`
	Amount            int64     `json:"amount"`
	Reason            string    `json:"reason,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type DepositResponse struct {
	Id                  uuid.UUID          `json:"id"`
	Amount              int64              `json:"amount"`
	Currency            string             `json:"currency"`
	Status              string             `json:"status"`
	RefundableRemaining int64              `json:"refundable_remaining"`
	ExternalChargeRef   string             `json:"external_charge_reference"`
	ExternalPaymentRef  string             `json:"external_payment_reference"`
	GuestId             uuid.UUID          `json:"guest_id"`
	PropertyId          uuid.UUID          `json:"property_id"`
	Description         string             `json:"description,omitempty"`
	Refunds             []DepositRefundDTO `json:"refunds"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`

	Guest    *GuestResponse    `json:"guest,omitempty"`
	Property *PropertyResponse `json:"property,omitempty"`
}

// ListDepositsQuery carries the already-parsed filter set. Parsing (and
// rejecting malformed ids/amounts) happens in the controller before any
// query is issued.
type ListDepositsQuery struct {
	Search         string
	PropertyId     *uuid.UUID
	GuestId        *uuid.UUID
	Status         string
	MinAmount      *int64
	MaxAmount      *int64
	DateFrom       *time.Time
	DateTo         *time.Time
	Page           int
	PageSize       int
	ExpandGuest    bool
	ExpandProperty bool
}

type DepositListResponse struct {
	Items      []*DepositResponse `json:"items"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	Total      int64              `json:"total"`
	TotalPages int64              `json:"totalPages"`
}

type DeleteDepositResponse struct {
	Ok bool `json:"ok"`
}
