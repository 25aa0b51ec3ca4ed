package implementation

import (
	"context"

	"checkinly-be/internal/entity"
	"checkinly-be/internal/mapper"
	"checkinly-be/internal/model"
	"checkinly-be/internal/repository/contract"
	"checkinly-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NotificationMapper
}

func NewNotificationRepository(db *gorm.DB) contract.NotificationRepository {
	return &NotificationRepositoryImpl{
		db:     db,
		mapper: mapper.NewNotificationMapper(),
	}
}

func (r *NotificationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NotificationRepositoryImpl) Create(ctx context.Context, notification *entity.Notification) error {
	m := r.mapper.ToModel(notification)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*notification = *r.mapper.ToEntity(m)
	return nil
}

func (r *NotificationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notification, error) {
	var models []*model.Notification
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NotificationRepositoryImpl) MarkRead(ctx context.Context, id uuid.UUID, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userId).
		Update("is_read", true).Error
}

func (r *NotificationRepositoryImpl) MarkAllRead(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = false", userId).
		Update("is_read", true).Error
}

func (r *NotificationRepositoryImpl) CountUnread(ctx context.Context, userId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = false", userId).
		Count(&count).Error
	return count, err
}
