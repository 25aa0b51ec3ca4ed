package mapper

import (
	"encoding/json"

	"checkinly-be/internal/entity"
	"checkinly-be/internal/model"

	"gorm.io/datatypes"
)

type NotificationMapper struct{}

func NewNotificationMapper() *NotificationMapper {
	return &NotificationMapper{}
}

func (m *NotificationMapper) ToEntity(n *model.Notification) *entity.Notification {
	if n == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(n.Metadata) > 0 {
		_ = json.Unmarshal(n.Metadata, &metadata)
	}

	return &entity.Notification{
		Id:         n.ID,
		UserId:     n.UserID,
		TypeCode:   n.TypeCode,
		Title:      n.Title,
		Message:    n.Message,
		Metadata:   metadata,
		EntityType: n.EntityType,
		EntityId:   n.EntityID,
		IsRead:     n.IsRead,
		CreatedAt:  n.CreatedAt,
	}
}

func (m *NotificationMapper) ToModel(n *entity.Notification) *model.Notification {
	if n == nil {
		return nil
	}

	var metadata datatypes.JSON
	if n.Metadata != nil {
		raw, _ := json.Marshal(n.Metadata)
		metadata = datatypes.JSON(raw)
	}

	return &model.Notification{
		ID:         n.Id,
		UserID:     n.UserId,
		TypeCode:   n.TypeCode,
		Title:      n.Title,
		Message:    n.Message,
		Metadata:   metadata,
		EntityType: n.EntityType,
		EntityID:   n.EntityId,
		IsRead:     n.IsRead,
		CreatedAt:  n.CreatedAt,
	}
}

func (m *NotificationMapper) ToEntities(notifications []*model.Notification) []*entity.Notification {
	entities := make([]*entity.Notification, len(notifications))
	for i, n := range notifications {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
