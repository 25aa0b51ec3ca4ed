package implementation

import (
	"context"
	"errors"
	"time"

	"checkinly-be/internal/entity"
	"checkinly-be/internal/mapper"
	"checkinly-be/internal/model"
	"checkinly-be/internal/repository/contract"
	"checkinly-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WebhookEventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.WebhookEventMapper
}

func NewWebhookEventRepository(db *gorm.DB) contract.WebhookEventRepository {
	return &WebhookEventRepositoryImpl{
		db:     db,
		mapper: mapper.NewWebhookEventMapper(),
	}
}

func (r *WebhookEventRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *WebhookEventRepositoryImpl) Create(ctx context.Context, event *entity.WebhookEvent) error {
	m := r.mapper.ToModel(event)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*event = *r.mapper.ToEntity(m)
	return nil
}

func (r *WebhookEventRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WebhookEvent, error) {
	var m model.WebhookEvent
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *WebhookEventRepositoryImpl) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.WebhookEvent{}).
		Where("id = ?", id).
		Update("processed", true).Error
}

func (r *WebhookEventRepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("received_at < ?", cutoff).Delete(&model.WebhookEvent{})
	return res.RowsAffected, res.Error
}
