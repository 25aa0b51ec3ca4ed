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
	"gorm.io/gorm/clause"
)

type DepositRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DepositMapper
}

func NewDepositRepository(db *gorm.DB) contract.DepositRepository {
	return &DepositRepositoryImpl{
		db:     db,
		mapper: mapper.NewDepositMapper(),
	}
}

func (r *DepositRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DepositRepositoryImpl) Create(ctx context.Context, deposit *entity.Deposit) error {
	m := r.mapper.ToModel(deposit)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*deposit = *r.mapper.ToEntity(m)
	return nil
}

func (r *DepositRepositoryImpl) Update(ctx context.Context, deposit *entity.Deposit) error {
	m := r.mapper.ToModel(deposit)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error; err != nil {
		return err
	}
	return nil
}

func (r *DepositRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deposit_id = ?", id).Delete(&model.DepositRefund{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Deposit{}, id).Error
	})
}

func (r *DepositRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Deposit, error) {
	var m model.Deposit
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Refunds"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DepositRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Deposit, error) {
	var models []*model.Deposit
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Refunds"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DepositRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Deposit{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *DepositRepositoryImpl) DecrementRefundable(ctx context.Context, id uuid.UUID, amount int64) (int64, bool, error) {
	// RETURNING hands back the balance this statement produced, so callers
	// never derive it from a stale read.
	var m model.Deposit
	res := r.db.WithContext(ctx).Model(&m).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "refundable_remaining"}}}).
		Where("id = ? AND refundable_remaining >= ?", id, amount).
		Update("refundable_remaining", gorm.Expr("refundable_remaining - ?", amount))
	if res.Error != nil {
		return 0, false, res.Error
	}
	if res.RowsAffected != 1 {
		return 0, false, nil
	}
	return m.RefundableRemaining, true, nil
}

func (r *DepositRepositoryImpl) UpdateBalance(ctx context.Context, id uuid.UUID, remaining int64, status entity.DepositStatus) error {
	return r.db.WithContext(ctx).Model(&model.Deposit{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"refundable_remaining": remaining,
			"status":               string(status),
		}).Error
}

func (r *DepositRepositoryImpl) AppendRefund(ctx context.Context, refund *entity.DepositRefund) error {
	m := r.mapper.RefundToModel(refund)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*refund = *r.mapper.RefundToEntity(m)
	return nil
}

func (r *DepositRepositoryImpl) ReplaceRefunds(ctx context.Context, depositId uuid.UUID, refunds []entity.DepositRefund) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deposit_id = ?", depositId).Delete(&model.DepositRefund{}).Error; err != nil {
			return err
		}
		if len(refunds) == 0 {
			return nil
		}
		models := make([]model.DepositRefund, len(refunds))
		for i := range refunds {
			models[i] = *r.mapper.RefundToModel(&refunds[i])
		}
		return tx.Create(&models).Error
	})
}

func (r *DepositRepositoryImpl) SumAmounts(ctx context.Context, specs ...specification.Specification) (int64, int64, error) {
	var row struct {
		TotalAmount    int64
		TotalRemaining int64
	}
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Deposit{}), specs...)
	err := query.
		Select("COALESCE(SUM(amount), 0) AS total_amount, COALESCE(SUM(refundable_remaining), 0) AS total_remaining").
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.TotalAmount, row.TotalRemaining, nil
}
