package payment

import "context"

// ChargeRequest describes a deposit hold to place with the provider.
type ChargeRequest struct {
	OrderID         string
	Amount          int64 // minor units
	Currency        string
	PaymentMethodID string
	CustomerID      string
	Description     string
}

// ChargeResult is the provider's view of a successful charge.
type ChargeResult struct {
	TransactionID string
	OrderID       string
	Status        string
}

// RefundRequest describes a partial or full release of a held charge.
// RefundKey is the caller-minted idempotency key: retrying with the same
// key never refunds twice.
type RefundRequest struct {
	RefundKey string
	Amount    int64
	Reason    string
}

// RefundResult is the provider's acknowledgement of a refund.
type RefundResult struct {
	RefundKey string
	Amount    int64
	Status    string
}

// Gateway abstracts the payment provider so services can be tested
// without network calls.
type Gateway interface {
	// Charge places a hold for the given order. The order id is minted by
	// the caller before the call so a crash between charge and persist can
	// be reconciled.
	Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error)

	// Refund releases part of a previously charged order.
	Refund(ctx context.Context, orderRef string, req *RefundRequest) (*RefundResult, error)
}
