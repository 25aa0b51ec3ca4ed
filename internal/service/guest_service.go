package service

import (
	"context"
	"time"

	"checkinly-be/internal/dto"
	"checkinly-be/internal/entity"
	"checkinly-be/internal/pkg/apperr"
	"checkinly-be/internal/repository/specification"
	"checkinly-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IGuestService interface {
	Create(ctx context.Context, hostId uuid.UUID, req *dto.CreateGuestRequest) (*dto.GuestResponse, error)
	Show(ctx context.Context, hostId uuid.UUID, id uuid.UUID) (*dto.GuestResponse, error)
	GetAll(ctx context.Context, hostId uuid.UUID) ([]*dto.GuestResponse, error)
	Update(ctx context.Context, hostId uuid.UUID, req *dto.UpdateGuestRequest) (*dto.GuestResponse, error)
	Delete(ctx context.Context, hostId uuid.UUID, id uuid.UUID) error
}

type guestService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewGuestService(uowFactory unitofwork.RepositoryFactory) IGuestService {
	return &guestService{uowFactory: uowFactory}
}

func (s *guestService) Create(ctx context.Context, hostId uuid.UUID, req *dto.CreateGuestRequest) (*dto.GuestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	guest := entity.Guest{
		Id:         uuid.New(),
		HostId:     hostId,
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		DocumentId: req.DocumentId,
		Notes:      req.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uow.GuestRepository().Create(ctx, &guest); err != nil {
		return nil, err
	}

	return toGuestResponse(&guest), nil
}

func (s *guestService) Show(ctx context.Context, hostId uuid.UUID, id uuid.UUID) (*dto.GuestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	guest, err := uow.GuestRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedByHost{HostID: hostId},
	)
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, apperr.NotFound("guest")
	}

	return toGuestResponse(guest), nil
}

func (s *guestService) GetAll(ctx context.Context, hostId uuid.UUID) ([]*dto.GuestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	guests, err := uow.GuestRepository().FindAll(ctx,
		specification.OwnedByHost{HostID: hostId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.GuestResponse, len(guests))
	for i, g := range guests {
		result[i] = toGuestResponse(g)
	}
	return result, nil
}

func (s *guestService) Update(ctx context.Context, hostId uuid.UUID, req *dto.UpdateGuestRequest) (*dto.GuestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	guest, err := uow.GuestRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedByHost{HostID: hostId},
	)
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, apperr.NotFound("guest")
	}

	guest.FullName = req.FullName
	guest.Email = req.Email
	guest.Phone = req.Phone
	guest.DocumentId = req.DocumentId
	guest.Notes = req.Notes
	guest.UpdatedAt = time.Now()

	if err := uow.GuestRepository().Update(ctx, guest); err != nil {
		return nil, err
	}

	return toGuestResponse(guest), nil
}

func (s *guestService) Delete(ctx context.Context, hostId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	guest, err := uow.GuestRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedByHost{HostID: hostId},
	)
	if err != nil {
		return err
	}
	if guest == nil {
		return apperr.NotFound("guest")
	}

	count, err := uow.DepositRepository().Count(ctx, specification.ByGuestID{GuestID: id})
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("guest has deposits recorded against them")
	}

	return uow.GuestRepository().Delete(ctx, id)
}

func toGuestResponse(g *entity.Guest) *dto.GuestResponse {
	return &dto.GuestResponse{
		Id:         g.Id,
		FullName:   g.FullName,
		Email:      g.Email,
		Phone:      g.Phone,
		DocumentId: g.DocumentId,
		Notes:      g.Notes,
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}
