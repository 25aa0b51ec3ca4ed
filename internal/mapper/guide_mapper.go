package mapper

import (
	"encoding/json"

	"checkinly-be/internal/entity"
	"checkinly-be/internal/model"

	"gorm.io/datatypes"
)

type GuideMapper struct{}

func NewGuideMapper() *GuideMapper {
	return &GuideMapper{}
}

func (m *GuideMapper) ToEntity(g *model.ArrivalGuide) *entity.ArrivalGuide {
	if g == nil {
		return nil
	}

	var content map[string]interface{}
	if len(g.Content) > 0 {
		_ = json.Unmarshal(g.Content, &content)
	}

	return &entity.ArrivalGuide{
		Id:         g.ID,
		PropertyId: g.PropertyID,
		Title:      g.Title,
		Content:    content,
		ShareToken: g.ShareToken,
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}

func (m *GuideMapper) ToModel(g *entity.ArrivalGuide) *model.ArrivalGuide {
	if g == nil {
		return nil
	}

	var content datatypes.JSON
	if g.Content != nil {
		raw, _ := json.Marshal(g.Content)
		content = datatypes.JSON(raw)
	}

	return &model.ArrivalGuide{
		ID:         g.Id,
		PropertyID: g.PropertyId,
		Title:      g.Title,
		Content:    content,
		ShareToken: g.ShareToken,
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}

func (m *GuideMapper) ToEntities(guides []*model.ArrivalGuide) []*entity.ArrivalGuide {
	entities := make([]*entity.ArrivalGuide, len(guides))
	for i, g := range guides {
		entities[i] = m.ToEntity(g)
	}
	return entities
}
