package entity

import (
	"time"

	"github.com/google/uuid"
)

// DepositStatus is never stored independently of the balance: it is always
// re-derived from RefundableRemaining vs Amount (see DeriveDepositStatus).
type DepositStatus string

const (
	DepositStatusCaptured          DepositStatus = "captured"
	DepositStatusPartiallyRefunded DepositStatus = "partially_refunded"
	DepositStatusRefunded          DepositStatus = "refunded"
)

// Deposit is a security-deposit hold placed against a guest for a property
// stay, backed by a payment-provider charge. Amount and the external
// references are immutable after capture; RefundableRemaining only ever
// decreases.
type Deposit struct {
	Id                  uuid.UUID
	Amount              int64 // minor currency units, the maximum ever held
	Currency            string
	Status              DepositStatus
	RefundableRemaining int64
	ExternalChargeRef   string // provider charge object id
	ExternalPaymentRef  string // provider order/authorization id
	GuestId             uuid.UUID
	PropertyId          uuid.UUID
	Description         string
	Refunds             []DepositRefund
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// Populated only when the caller asked for expansion.
	Guest    *Guest
	Property *Property
}

// DepositRefund is one entry of the append-only refund history.
type DepositRefund struct {
	Id                uuid.UUID
	DepositId         uuid.UUID
	ExternalRefundRef string
	Amount            int64
	Reason            string
	CreatedAt         time.Time
}

// DeriveDepositStatus computes the status as a pure function of the
// remaining balance:
//
//	remaining == amount -> captured
//	0 < remaining < amount -> partially_refunded
//	remaining == 0 -> refunded
func DeriveDepositStatus(amount, remaining int64) DepositStatus {
	switch {
	case remaining <= 0:
		return DepositStatusRefunded
	case remaining < amount:
		return DepositStatusPartiallyRefunded
	default:
		return DepositStatusCaptured
	}
}

// RefundedTotal sums the recorded refund history.
func (d *Deposit) RefundedTotal() int64 {
	var total int64
	for _, r := range d.Refunds {
		total += r.Amount
	}
	return total
}

// IsValidStatus reports whether s is one of the known deposit statuses.
func IsValidStatus(s string) bool {
	switch DepositStatus(s) {
	case DepositStatusCaptured, DepositStatusPartiallyRefunded, DepositStatusRefunded:
		return true
	}
	return false
}
