package service

import (
	"context"

	"checkinly-be/internal/dto"
	"checkinly-be/internal/entity"
	"checkinly-be/internal/repository/specification"
	"checkinly-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IDashboardService interface {
	Summary(ctx context.Context, hostId uuid.UUID) (*dto.DashboardSummaryResponse, error)
}

type dashboardService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewDashboardService(uowFactory unitofwork.RepositoryFactory) IDashboardService {
	return &dashboardService{uowFactory: uowFactory}
}

func (s *dashboardService) Summary(ctx context.Context, hostId uuid.UUID) (*dto.DashboardSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	properties, err := uow.PropertyRepository().Count(ctx, specification.OwnedByHost{HostID: hostId})
	if err != nil {
		return nil, err
	}

	guests, err := uow.GuestRepository().Count(ctx, specification.OwnedByHost{HostID: hostId})
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]int64, 3)
	var totalDeposits int64
	for _, status := range []entity.DepositStatus{
		entity.DepositStatusCaptured,
		entity.DepositStatusPartiallyRefunded,
		entity.DepositStatusRefunded,
	} {
		count, err := uow.DepositRepository().Count(ctx, specification.DepositStatusIs{Status: string(status)})
		if err != nil {
			return nil, err
		}
		byStatus[string(status)] = count
		totalDeposits += count
	}

	totalAmount, totalRemaining, err := uow.DepositRepository().SumAmounts(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardSummaryResponse{
		Properties:       properties,
		Guests:           guests,
		DepositsByStatus: byStatus,
		TotalHeldAmount:  totalRemaining,
		TotalRefunded:    totalAmount - totalRemaining,
		TotalDeposits:    totalDeposits,
	}, nil
}
