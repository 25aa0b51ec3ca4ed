package dto

import "github.com/google/uuid"

const (
	EmailJobDepositReceipt = "deposit_receipt"
	EmailJobRefundNotice   = "refund_notice"
	EmailJobArrivalGuide   = "arrival_guide"
)

// EmailJobMessage is the payload queued on the in-process bus for the
// email worker.
type EmailJobMessage struct {
	Kind         string    `json:"kind"`
	DepositId    uuid.UUID `json:"deposit_id,omitempty"`
	GuideId      uuid.UUID `json:"guide_id,omitempty"`
	GuestId      uuid.UUID `json:"guest_id,omitempty"`
	RefundAmount int64     `json:"refund_amount,omitempty"`
	Remaining    int64     `json:"remaining,omitempty"`
}
