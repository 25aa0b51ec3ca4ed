package contract

import (
	"context"

	"checkinly-be/internal/entity"
	"checkinly-be/internal/repository/specification"

	"github.com/google/uuid"
)

type GuestRepository interface {
	Create(ctx context.Context, guest *entity.Guest) error
	Update(ctx context.Context, guest *entity.Guest) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Guest, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Guest, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
