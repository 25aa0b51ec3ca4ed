package contract

import (
	"context"

	"checkinly-be/internal/entity"
	"checkinly-be/internal/repository/specification"

	"github.com/google/uuid"
)

type GuideRepository interface {
	Create(ctx context.Context, guide *entity.ArrivalGuide) error
	Update(ctx context.Context, guide *entity.ArrivalGuide) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ArrivalGuide, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ArrivalGuide, error)
}
