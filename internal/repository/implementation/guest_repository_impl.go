package implementation

import (
	"context"
	"errors"

	"checkinly-be/internal/entity"
	"checkinly-be/internal/mapper"
	"checkinly-be/internal/model"
	"checkinly-be/internal/repository/contract"
	"checkinly-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GuestRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GuestMapper
}

func NewGuestRepository(db *gorm.DB) contract.GuestRepository {
	return &GuestRepositoryImpl{
		db:     db,
		mapper: mapper.NewGuestMapper(),
	}
}

func (r *GuestRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GuestRepositoryImpl) Create(ctx context.Context, guest *entity.Guest) error {
	m := r.mapper.ToModel(guest)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*guest = *r.mapper.ToEntity(m)
	return nil
}

func (r *GuestRepositoryImpl) Update(ctx context.Context, guest *entity.Guest) error {
	m := r.mapper.ToModel(guest)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*guest = *r.mapper.ToEntity(m)
	return nil
}

func (r *GuestRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Guest{}, id).Error
}

func (r *GuestRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Guest, error) {
	var m model.Guest
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *GuestRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Guest, error) {
	var models []*model.Guest
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *GuestRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Guest{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
