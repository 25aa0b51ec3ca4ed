package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"checkinly-be/internal/entity"
	"checkinly-be/internal/pkg/logger"
	"checkinly-be/internal/repository/specification"
	"checkinly-be/internal/repository/unitofwork"
	"checkinly-be/pkg/events"
	pktNats "checkinly-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification entity.Notification)
}

type NotificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(
	uowFactory unitofwork.RepositoryFactory,
	sub *pktNats.Subscriber,
	delivery NotificationDelivery,
	log logger.ILogger,
) *NotificationService {
	return &NotificationService{
		uowFactory: uowFactory,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	payload := event.Payload()
	hostIdStr, ok := payload["host_id"].(string)
	if !ok {
		s.logger.Warn("NotificationService", "Event without host_id, skipping", map[string]interface{}{"type": typeCode})
		return nil
	}
	hostId, err := uuid.Parse(hostIdStr)
	if err != nil || hostId == uuid.Nil {
		return nil
	}

	notif := s.buildNotification(hostId, typeCode, payload)
	if notif == nil {
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NotificationRepository().Create(ctx, notif); err != nil {
		s.logger.Error("NotificationService", "Error saving notification", map[string]interface{}{"error": err})
		return err // NATS will redeliver
	}

	if s.delivery != nil {
		s.delivery.Send(hostId, *notif)
	}

	return nil
}

func (s *NotificationService) buildNotification(hostId uuid.UUID, typeCode string, payload map[string]interface{}) *entity.Notification {
	var title, message string

	switch typeCode {
	case events.TypeDepositCaptured:
		title = "Deposit captured"
		message = fmt.Sprintf("A deposit of %v %v was placed.", payload["amount"], payload["currency"])
	case events.TypeDepositRefunded:
		title = "Deposit refunded"
		message = fmt.Sprintf("A refund of %v was issued, %v remaining.", payload["refund_amount"], payload["remaining"])
	case events.TypeDepositReconciled:
		title = "Deposit reconciled"
		message = fmt.Sprintf("Provider reported %v refunds, balance is now %v.", payload["refund_count"], payload["remaining"])
	default:
		return nil
	}

	entityType := ""
	var entityId *uuid.UUID
	if et, ok := payload["entity_type"].(string); ok {
		entityType = et
	}
	if eidStr, ok := payload["entity_id"].(string); ok {
		if eid, err := uuid.Parse(eidStr); err == nil {
			entityId = &eid
		}
	}

	return &entity.Notification{
		Id:         uuid.New(),
		UserId:     hostId,
		TypeCode:   typeCode,
		Title:      title,
		Message:    message,
		Metadata:   payload,
		EntityType: entityType,
		EntityId:   entityId,
		IsRead:     false,
		CreatedAt:  time.Now(),
	}
}

// GetNotifications fetches notifications for a user, newest first.
func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notifications, err := uow.NotificationRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userID},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, 0, err
	}

	total := int64(len(notifications))
	return notifications, total, nil
}

// GetUnreadCount fetches unread count.
func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().CountUnread(ctx, userID)
}

// MarkAsRead marks a notification as read.
func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkRead(ctx, id, userID)
}

// MarkAllAsRead marks all notifications as read for a user.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAllRead(ctx, userID)
}
