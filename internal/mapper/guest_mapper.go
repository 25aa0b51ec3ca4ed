package mapper

import (
	"checkinly-be/internal/entity"
	"checkinly-be/internal/model"
)

type GuestMapper struct{}

func NewGuestMapper() *GuestMapper {
	return &GuestMapper{}
}

func (m *GuestMapper) ToEntity(g *model.Guest) *entity.Guest {
	if g == nil {
		return nil
	}
	return &entity.Guest{
		Id:         g.ID,
		HostId:     g.HostID,
		FullName:   g.FullName,
		Email:      g.Email,
		Phone:      g.Phone,
		DocumentId: g.DocumentID,
		Notes:      g.Notes,
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}

func (m *GuestMapper) ToModel(g *entity.Guest) *model.Guest {
	if g == nil {
		return nil
	}
	return &model.Guest{
		ID:         g.Id,
		HostID:     g.HostId,
		FullName:   g.FullName,
		Email:      g.Email,
		Phone:      g.Phone,
		DocumentID: g.DocumentId,
		Notes:      g.Notes,
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}

func (m *GuestMapper) ToEntities(guests []*model.Guest) []*entity.Guest {
	entities := make([]*entity.Guest, len(guests))
	for i, g := range guests {
		entities[i] = m.ToEntity(g)
	}
	return entities
}
