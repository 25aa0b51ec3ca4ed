package unitofwork

import (
	"context"
	"fmt"

	"checkinly-be/internal/repository/contract"
	"checkinly-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // the active transaction, nil outside Begin/Commit
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PropertyRepository() contract.PropertyRepository {
	return implementation.NewPropertyRepository(u.getDB())
}

func (u *UnitOfWorkImpl) GuestRepository() contract.GuestRepository {
	return implementation.NewGuestRepository(u.getDB())
}

func (u *UnitOfWorkImpl) DepositRepository() contract.DepositRepository {
	return implementation.NewDepositRepository(u.getDB())
}

func (u *UnitOfWorkImpl) WebhookEventRepository() contract.WebhookEventRepository {
	return implementation.NewWebhookEventRepository(u.getDB())
}

func (u *UnitOfWorkImpl) GuideRepository() contract.GuideRepository {
	return implementation.NewGuideRepository(u.getDB())
}

func (u *UnitOfWorkImpl) NotificationRepository() contract.NotificationRepository {
	return implementation.NewNotificationRepository(u.getDB())
}
