package unitofwork

import (
	"context"

	"checkinly-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	PropertyRepository() contract.PropertyRepository
	GuestRepository() contract.GuestRepository
	DepositRepository() contract.DepositRepository
	WebhookEventRepository() contract.WebhookEventRepository
	GuideRepository() contract.GuideRepository
	NotificationRepository() contract.NotificationRepository
}
