package contract

import (
	"context"

	"checkinly-be/internal/entity"
	"checkinly-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DepositRepository interface {
	Create(ctx context.Context, deposit *entity.Deposit) error
	Update(ctx context.Context, deposit *entity.Deposit) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Deposit, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Deposit, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// DecrementRefundable atomically lowers refundable_remaining by amount,
	// guarded by remaining >= amount in the same statement. On success it
	// returns the balance the decrement actually produced, never a value
	// computed from an earlier read. Returns ok=false when the guard fails
	// (no row changed).
	DecrementRefundable(ctx context.Context, id uuid.UUID, amount int64) (remaining int64, ok bool, err error)

	// UpdateBalance overwrites remaining and the derived status, used by
	// webhook reconciliation.
	UpdateBalance(ctx context.Context, id uuid.UUID, remaining int64, status entity.DepositStatus) error

	AppendRefund(ctx context.Context, refund *entity.DepositRefund) error

	// ReplaceRefunds swaps the stored refund history for the provider's
	// authoritative list.
	ReplaceRefunds(ctx context.Context, depositId uuid.UUID, refunds []entity.DepositRefund) error

	// SumAmounts aggregates amount and refundable_remaining over the
	// matching deposits.
	SumAmounts(ctx context.Context, specs ...specification.Specification) (totalAmount int64, totalRemaining int64, err error)
}
