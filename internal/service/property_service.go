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

type IPropertyService interface {
	Create(ctx context.Context, hostId uuid.UUID, req *dto.CreatePropertyRequest) (*dto.PropertyResponse, error)
	Show(ctx context.Context, hostId uuid.UUID, id uuid.UUID) (*dto.PropertyResponse, error)
	GetAll(ctx context.Context, hostId uuid.UUID) ([]*dto.PropertyResponse, error)
	Update(ctx context.Context, hostId uuid.UUID, req *dto.UpdatePropertyRequest) (*dto.PropertyResponse, error)
	Delete(ctx context.Context, hostId uuid.UUID, id uuid.UUID) error
}

type propertyService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewPropertyService(uowFactory unitofwork.RepositoryFactory) IPropertyService {
	return &propertyService{uowFactory: uowFactory}
}

func (s *propertyService) Create(ctx context.Context, hostId uuid.UUID, req *dto.CreatePropertyRequest) (*dto.PropertyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	maxGuests := req.MaxGuests
	if maxGuests == 0 {
		maxGuests = 2
	}

	now := time.Now()
	property := entity.Property{
		Id:        uuid.New(),
		HostId:    hostId,
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		Country:   req.Country,
		MaxGuests: maxGuests,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uow.PropertyRepository().Create(ctx, &property); err != nil {
		return nil, err
	}

	return toPropertyResponse(&property), nil
}

func (s *propertyService) Show(ctx context.Context, hostId uuid.UUID, id uuid.UUID) (*dto.PropertyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	property, err := uow.PropertyRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedByHost{HostID: hostId},
	)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, apperr.NotFound("property")
	}

	return toPropertyResponse(property), nil
}

func (s *propertyService) GetAll(ctx context.Context, hostId uuid.UUID) ([]*dto.PropertyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	properties, err := uow.PropertyRepository().FindAll(ctx,
		specification.OwnedByHost{HostID: hostId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.PropertyResponse, len(properties))
	for i, p := range properties {
		result[i] = toPropertyResponse(p)
	}
	return result, nil
}

func (s *propertyService) Update(ctx context.Context, hostId uuid.UUID, req *dto.UpdatePropertyRequest) (*dto.PropertyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	property, err := uow.PropertyRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedByHost{HostID: hostId},
	)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, apperr.NotFound("property")
	}

	property.Name = req.Name
	property.Address = req.Address
	property.City = req.City
	property.Country = req.Country
	if req.MaxGuests > 0 {
		property.MaxGuests = req.MaxGuests
	}
	property.Notes = req.Notes
	property.UpdatedAt = time.Now()

	if err := uow.PropertyRepository().Update(ctx, property); err != nil {
		return nil, err
	}

	return toPropertyResponse(property), nil
}

func (s *propertyService) Delete(ctx context.Context, hostId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	property, err := uow.PropertyRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedByHost{HostID: hostId},
	)
	if err != nil {
		return err
	}
	if property == nil {
		return apperr.NotFound("property")
	}

	// Refuse to delete a property with active deposits against it.
	count, err := uow.DepositRepository().Count(ctx, specification.ByPropertyID{PropertyID: id})
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("property has deposits recorded against it")
	}

	return uow.PropertyRepository().Delete(ctx, id)
}

func toPropertyResponse(p *entity.Property) *dto.PropertyResponse {
	return &dto.PropertyResponse{
		Id:        p.Id,
		Name:      p.Name,
		Address:   p.Address,
		City:      p.City,
		Country:   p.Country,
		MaxGuests: p.MaxGuests,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
