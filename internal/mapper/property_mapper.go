package mapper

import (
	"checkinly-be/internal/entity"
	"checkinly-be/internal/model"
)

type PropertyMapper struct{}

func NewPropertyMapper() *PropertyMapper {
	return &PropertyMapper{}
}

func (m *PropertyMapper) ToEntity(p *model.Property) *entity.Property {
	if p == nil {
		return nil
	}
	return &entity.Property{
		Id:        p.ID,
		HostId:    p.HostID,
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

func (m *PropertyMapper) ToModel(p *entity.Property) *model.Property {
	if p == nil {
		return nil
	}
	return &model.Property{
		ID:        p.Id,
		HostID:    p.HostId,
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

func (m *PropertyMapper) ToEntities(properties []*model.Property) []*entity.Property {
	entities := make([]*entity.Property, len(properties))
	for i, p := range properties {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
