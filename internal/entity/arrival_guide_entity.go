package entity

import (
	"time"

	"github.com/google/uuid"
)

// ArrivalGuide is the check-in information sheet for a property, shared with
// guests via a public token (rendered as a QR code).
type ArrivalGuide struct {
	Id         uuid.UUID
	PropertyId uuid.UUID
	Title      string
	Content    map[string]interface{} // wifi, door codes, directions, house rules
	ShareToken string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
