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

type GuideRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GuideMapper
}

func NewGuideRepository(db *gorm.DB) contract.GuideRepository {
	return &GuideRepositoryImpl{
		db:     db,
		mapper: mapper.NewGuideMapper(),
	}
}

func (r *GuideRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GuideRepositoryImpl) Create(ctx context.Context, guide *entity.ArrivalGuide) error {
	m := r.mapper.ToModel(guide)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*guide = *r.mapper.ToEntity(m)
	return nil
}

func (r *GuideRepositoryImpl) Update(ctx context.Context, guide *entity.ArrivalGuide) error {
	m := r.mapper.ToModel(guide)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*guide = *r.mapper.ToEntity(m)
	return nil
}

func (r *GuideRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ArrivalGuide{}, id).Error
}

func (r *GuideRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ArrivalGuide, error) {
	var m model.ArrivalGuide
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *GuideRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ArrivalGuide, error) {
	var models []*model.ArrivalGuide
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
