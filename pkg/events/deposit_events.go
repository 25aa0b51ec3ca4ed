package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeDepositCaptured   = "DEPOSIT_CAPTURED"
	TypeDepositRefunded   = "DEPOSIT_REFUNDED"
	TypeDepositReconciled = "DEPOSIT_RECONCILED"
)

func NewDepositCaptured(depositId, hostId, guestId, propertyId uuid.UUID, amount int64, currency string) Event {
	return BaseEvent{
		Type: TypeDepositCaptured,
		Data: map[string]interface{}{
			"deposit_id":  depositId.String(),
			"host_id":     hostId.String(),
			"guest_id":    guestId.String(),
			"property_id": propertyId.String(),
			"amount":      amount,
			"currency":    currency,
			"entity_type": "deposit",
			"entity_id":   depositId.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewDepositRefunded(depositId, hostId uuid.UUID, refundAmount, remaining int64, status string) Event {
	return BaseEvent{
		Type: TypeDepositRefunded,
		Data: map[string]interface{}{
			"deposit_id":    depositId.String(),
			"host_id":       hostId.String(),
			"refund_amount": refundAmount,
			"remaining":     remaining,
			"status":        status,
			"entity_type":   "deposit",
			"entity_id":     depositId.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewDepositReconciled(depositId, hostId uuid.UUID, remaining int64, status string, refundCount int) Event {
	return BaseEvent{
		Type: TypeDepositReconciled,
		Data: map[string]interface{}{
			"deposit_id":   depositId.String(),
			"host_id":      hostId.String(),
			"remaining":    remaining,
			"status":       status,
			"refund_count": refundCount,
			"entity_type":  "deposit",
			"entity_id":    depositId.String(),
		},
		OccurredAt: time.Now(),
	}
}
