package contract

import (
	"context"
	"time"

	"checkinly-be/internal/entity"
	"checkinly-be/internal/repository/specification"

	"github.com/google/uuid"
)

type WebhookEventRepository interface {
	Create(ctx context.Context, event *entity.WebhookEvent) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WebhookEvent, error)

	// MarkProcessed records that the event's effects are committed, so a
	// redelivery of the same payload can be acknowledged without rework.
	MarkProcessed(ctx context.Context, id uuid.UUID) error

	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
