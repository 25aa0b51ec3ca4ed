package mapper

import (
	"checkinly-be/internal/entity"
	"checkinly-be/internal/model"

	"gorm.io/datatypes"
)

type WebhookEventMapper struct{}

func NewWebhookEventMapper() *WebhookEventMapper {
	return &WebhookEventMapper{}
}

func (m *WebhookEventMapper) ToEntity(e *model.WebhookEvent) *entity.WebhookEvent {
	if e == nil {
		return nil
	}
	return &entity.WebhookEvent{
		Id:         e.ID,
		EventKey:   e.EventKey,
		EventType:  e.EventType,
		ChargeRef:  e.ChargeRef,
		RawPayload: []byte(e.RawPayload),
		Processed:  e.Processed,
		ReceivedAt: e.ReceivedAt,
	}
}

func (m *WebhookEventMapper) ToModel(e *entity.WebhookEvent) *model.WebhookEvent {
	if e == nil {
		return nil
	}
	return &model.WebhookEvent{
		ID:         e.Id,
		EventKey:   e.EventKey,
		EventType:  e.EventType,
		ChargeRef:  e.ChargeRef,
		RawPayload: datatypes.JSON(e.RawPayload),
		Processed:  e.Processed,
		ReceivedAt: e.ReceivedAt,
	}
}
