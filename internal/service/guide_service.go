package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"checkinly-be/internal/dto"
	"checkinly-be/internal/entity"
	"checkinly-be/internal/pkg/apperr"
	"checkinly-be/internal/repository/specification"
	"checkinly-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/skip2/go-qrcode"
)

type IGuideService interface {
	Create(ctx context.Context, hostId uuid.UUID, req *dto.CreateGuideRequest) (*dto.GuideResponse, error)
	Show(ctx context.Context, hostId uuid.UUID, id uuid.UUID) (*dto.GuideResponse, error)
	GetAllByProperty(ctx context.Context, hostId uuid.UUID, propertyId uuid.UUID) ([]*dto.GuideResponse, error)
	Update(ctx context.Context, hostId uuid.UUID, req *dto.UpdateGuideRequest) (*dto.GuideResponse, error)
	Delete(ctx context.Context, hostId uuid.UUID, id uuid.UUID) error

	// ShowShared resolves a guide by its public share token, no auth.
	ShowShared(ctx context.Context, shareToken string) (*dto.GuideResponse, error)
	// RenderQR returns a PNG QR code pointing at the public guide URL.
	RenderQR(ctx context.Context, hostId uuid.UUID, id uuid.UUID) ([]byte, error)
	// Send emails the guide (with QR) to a guest.
	Send(ctx context.Context, hostId uuid.UUID, id uuid.UUID, req *dto.SendGuideRequest) error
}

type guideService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	sharedCache      *gocache.Cache
	publicURL        string
}

func NewGuideService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService, publicURL string) IGuideService {
	return &guideService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		// Shared guides are read on every guest phone refresh; cache the
		// token lookups briefly.
		sharedCache: gocache.New(5*time.Minute, 10*time.Minute),
		publicURL:   publicURL,
	}
}

func newShareToken() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func (s *guideService) Create(ctx context.Context, hostId uuid.UUID, req *dto.CreateGuideRequest) (*dto.GuideResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	property, err := uow.PropertyRepository().FindOne(ctx,
		specification.ByID{ID: req.PropertyId},
		specification.OwnedByHost{HostID: hostId},
	)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, apperr.NotFound("property")
	}

	now := time.Now()
	guide := entity.ArrivalGuide{
		Id:         uuid.New(),
		PropertyId: property.Id,
		Title:      req.Title,
		Content:    req.Content,
		ShareToken: newShareToken(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uow.GuideRepository().Create(ctx, &guide); err != nil {
		return nil, err
	}

	return s.toGuideResponse(&guide), nil
}

func (s *guideService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, hostId, id uuid.UUID) (*entity.ArrivalGuide, error) {
	guide, err := uow.GuideRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if guide == nil {
		return nil, apperr.NotFound("guide")
	}

	property, err := uow.PropertyRepository().FindOne(ctx,
		specification.ByID{ID: guide.PropertyId},
		specification.OwnedByHost{HostID: hostId},
	)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, apperr.NotFound("guide")
	}

	return guide, nil
}

func (s *guideService) Show(ctx context.Context, hostId uuid.UUID, id uuid.UUID) (*dto.GuideResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	guide, err := s.findOwned(ctx, uow, hostId, id)
	if err != nil {
		return nil, err
	}
	return s.toGuideResponse(guide), nil
}

func (s *guideService) GetAllByProperty(ctx context.Context, hostId uuid.UUID, propertyId uuid.UUID) ([]*dto.GuideResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	property, err := uow.PropertyRepository().FindOne(ctx,
		specification.ByID{ID: propertyId},
		specification.OwnedByHost{HostID: hostId},
	)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, apperr.NotFound("property")
	}

	guides, err := uow.GuideRepository().FindAll(ctx,
		specification.FilterBy{Field: "property_id", Value: propertyId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.GuideResponse, len(guides))
	for i, g := range guides {
		result[i] = s.toGuideResponse(g)
	}
	return result, nil
}

func (s *guideService) Update(ctx context.Context, hostId uuid.UUID, req *dto.UpdateGuideRequest) (*dto.GuideResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	guide, err := s.findOwned(ctx, uow, hostId, req.Id)
	if err != nil {
		return nil, err
	}

	guide.Title = req.Title
	guide.Content = req.Content
	guide.UpdatedAt = time.Now()

	if err := uow.GuideRepository().Update(ctx, guide); err != nil {
		return nil, err
	}

	s.sharedCache.Delete(guide.ShareToken)

	return s.toGuideResponse(guide), nil
}

func (s *guideService) Delete(ctx context.Context, hostId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	guide, err := s.findOwned(ctx, uow, hostId, id)
	if err != nil {
		return err
	}

	s.sharedCache.Delete(guide.ShareToken)

	return uow.GuideRepository().Delete(ctx, id)
}

func (s *guideService) ShowShared(ctx context.Context, shareToken string) (*dto.GuideResponse, error) {
	if cached, found := s.sharedCache.Get(shareToken); found {
		return cached.(*dto.GuideResponse), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	guide, err := uow.GuideRepository().FindOne(ctx, specification.ByShareToken{Token: shareToken})
	if err != nil {
		return nil, err
	}
	if guide == nil {
		return nil, apperr.NotFound("guide")
	}

	resp := s.toGuideResponse(guide)
	s.sharedCache.Set(shareToken, resp, gocache.DefaultExpiration)

	return resp, nil
}

func (s *guideService) RenderQR(ctx context.Context, hostId uuid.UUID, id uuid.UUID) ([]byte, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	guide, err := s.findOwned(ctx, uow, hostId, id)
	if err != nil {
		return nil, err
	}

	return qrcode.Encode(s.shareURL(guide.ShareToken), qrcode.Medium, 256)
}

func (s *guideService) Send(ctx context.Context, hostId uuid.UUID, id uuid.UUID, req *dto.SendGuideRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	guide, err := s.findOwned(ctx, uow, hostId, id)
	if err != nil {
		return err
	}

	guest, err := uow.GuestRepository().FindOne(ctx,
		specification.ByID{ID: req.GuestId},
		specification.OwnedByHost{HostID: hostId},
	)
	if err != nil {
		return err
	}
	if guest == nil {
		return apperr.NotFound("guest")
	}
	if guest.Email == "" {
		return apperr.Validation("guest has no email address")
	}

	payload, err := json.Marshal(dto.EmailJobMessage{
		Kind:    dto.EmailJobArrivalGuide,
		GuideId: guide.Id,
		GuestId: guest.Id,
	})
	if err != nil {
		return err
	}

	return s.publisherService.Publish(ctx, payload)
}

func (s *guideService) shareURL(token string) string {
	return fmt.Sprintf("%s/guides/%s", s.publicURL, token)
}

func (s *guideService) toGuideResponse(g *entity.ArrivalGuide) *dto.GuideResponse {
	return &dto.GuideResponse{
		Id:         g.Id,
		PropertyId: g.PropertyId,
		Title:      g.Title,
		Content:    g.Content,
		ShareURL:   s.shareURL(g.ShareToken),
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}
