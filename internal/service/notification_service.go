package service

import (
	"context"
	"fmt"
	"time"

	"ai-mathteach-be/internal/dto"
	"ai-mathteach-be/internal/entity"
	"ai-mathteach-be/internal/pkg/logger"
	"ai-mathteach-be/internal/repository/specification"
	"ai-mathteach-be/internal/repository/unitofwork"
	"ai-mathteach-be/pkg/events"

	"github.com/google/uuid"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userId uuid.UUID, notification *entity.Notification)
}

type INotificationService interface {
	List(ctx context.Context, userId uuid.UUID, query *dto.ListNotificationsQuery) ([]*dto.NotificationResponse, int64, error)
	UnreadCount(ctx context.Context, userId uuid.UUID) (*dto.UnreadCountResponse, error)
	MarkRead(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userId uuid.UUID) error
	// HandleEvent converts a workflow event into a stored notification
	// and pushes it to any connected client.
	HandleEvent(ctx context.Context, event events.Event) error
}

type notificationService struct {
	uowFactory unitofwork.RepositoryFactory
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(uowFactory unitofwork.RepositoryFactory, delivery NotificationDelivery, log logger.ILogger) INotificationService {
	return &notificationService{
		uowFactory: uowFactory,
		delivery:   delivery,
		logger:     log,
	}
}

func (s *notificationService) List(ctx context.Context, userId uuid.UUID, query *dto.ListNotificationsQuery) ([]*dto.NotificationResponse, int64, error) {
	page, limit := dto.NormalizePage(query.Page, query.Limit)

	specs := []specification.Specification{
		specification.OwnedBy{UserID: userId},
	}
	if query.UnreadOnly {
		specs = append(specs, specification.Unread{})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	total, err := uow.NotificationRepository().Count(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}

	listSpecs := append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	notifications, err := uow.NotificationRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*dto.NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		out = append(out, &dto.NotificationResponse{
			Id:         notification.Id,
			Title:      notification.Title,
			Message:    notification.Message,
			EntityType: notification.EntityType,
			EntityId:   notification.EntityId,
			Metadata:   notification.Metadata,
			Read:       notification.IsRead,
			ReadAt:     notification.ReadAt,
			CreatedAt:  notification.CreatedAt,
		})
	}
	return out, total, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userId uuid.UUID) (*dto.UnreadCountResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	count, err := uow.NotificationRepository().Count(ctx,
		specification.OwnedBy{UserID: userId},
		specification.Unread{},
	)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkRead(ctx, id, userId)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAllRead(ctx, userId)
}

func (s *notificationService) HandleEvent(ctx context.Context, event events.Event) error {
	notification, ok := notificationFromEvent(event)
	if !ok {
		// Not every event produces a notification
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NotificationRepository().Create(ctx, notification); err != nil {
		return err
	}

	if s.delivery != nil {
		s.delivery.Send(notification.UserId, notification)
	}

	s.logger.Info("NotificationService", "Notification created", map[string]interface{}{
		"notification_id": notification.Id,
		"user_id":         notification.UserId,
		"event_type":      event.EventType(),
	})
	return nil
}

func notificationFromEvent(event events.Event) (*entity.Notification, bool) {
	payload := event.Payload()

	parseUserId := func(key string) (uuid.UUID, bool) {
		raw, _ := payload[key].(string)
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, false
		}
		return id, true
	}
	parseEntityId := func(key string) *uuid.UUID {
		raw, _ := payload[key].(string)
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil
		}
		return &id
	}

	notification := &entity.Notification{
		Id:        uuid.New(),
		Metadata:  payload,
		CreatedAt: time.Now(),
	}

	switch event.EventType() {
	case events.TypeGenerationCompleted:
		userId, ok := parseUserId("user_id")
		if !ok {
			return nil, false
		}
		requestType, _ := payload["request_type"].(string)
		notification.UserId = userId
		notification.Title = "Generation complete"
		notification.Message = fmt.Sprintf("Your %s generation finished successfully", requestType)
		notification.EntityType = "ai_request"
		notification.EntityId = parseEntityId("request_id")
	case events.TypeGenerationFailed:
		userId, ok := parseUserId("user_id")
		if !ok {
			return nil, false
		}
		requestType, _ := payload["request_type"].(string)
		notification.UserId = userId
		notification.Title = "Generation failed"
		notification.Message = fmt.Sprintf("Your %s generation could not be completed", requestType)
		notification.EntityType = "ai_request"
		notification.EntityId = parseEntityId("request_id")
	case events.TypeQuizSubmitted:
		teacherId, ok := parseUserId("teacher_id")
		if !ok {
			return nil, false
		}
		title, _ := payload["title"].(string)
		notification.UserId = teacherId
		notification.Title = "New quiz submission"
		notification.Message = fmt.Sprintf("A student submitted %q", title)
		notification.EntityType = "quiz"
		notification.EntityId = parseEntityId("quiz_id")
	default:
		return nil, false
	}
	return notification, true
}
