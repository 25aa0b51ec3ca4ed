package entity

import (
	"time"

	"github.com/google/uuid"
)

// WebhookEvent is the audit record of a verified provider notification.
// The raw payload is retained for manual reconciliation.
type WebhookEvent struct {
	Id         uuid.UUID
	EventKey   string // hash of the raw payload, used for fast-path dedup
	EventType  string // provider transaction_status
	ChargeRef  string
	RawPayload []byte
	// Processed flips to true only after the notification's effects are
	// committed. A redelivery of a stored-but-unprocessed payload is
	// handled again, never short-circuited.
	Processed  bool
	ReceivedAt time.Time
}
