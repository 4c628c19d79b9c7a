package usecase

import (
	"context"
	"fmt"
	"time"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
	"car-rental/internal/dto/request"
	"car-rental/internal/dto/response"
	"car-rental/internal/notify"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.NotificationResponse], error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, userID uuid.UUID, id string) error
	Subscribe(userID uuid.UUID) (<-chan []byte, func())

	// Notify persists a notification and pushes it to live subscribers.
	// Best effort: failures are logged, never propagated to the caller's flow.
	Notify(ctx context.Context, userID uuid.UUID, typ entity.NotificationType, title, body string, orderID *uuid.UUID)
}

type notificationService struct {
	repo *repository.Repository
	hub  *notify.Hub
	log  *zap.Logger
}

func NewNotificationService(repo *repository.Repository, hub *notify.Hub, log *zap.Logger) NotificationService {
	return &notificationService{
		repo: repo,
		hub:  hub,
		log:  log,
	}
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.NotificationResponse], error) {
	notifications, err := s.repo.Notification.FindByUserID(ctx, userID, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list notifications", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get notifications")
	}

	total, err := s.repo.Notification.CountByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count notifications", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get notifications")
	}

	return response.NewPaginatedResponse(
		response.NotificationsToResponse(notifications),
		page.Page, page.Limit(), total,
	), nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.repo.Notification.CountUnread(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count unread notifications", zap.Error(err), zap.String("user_id", userID.String()))
		return 0, fmt.Errorf("failed to get unread count")
	}
	return count, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID uuid.UUID, id string) error {
	notificationID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid notification id")
	}

	if err := s.repo.Notification.MarkRead(ctx, notificationID, userID); err != nil {
		if err.Error() == "notification not found" {
			return err
		}
		s.log.Error("Failed to mark notification read",
			zap.Error(err),
			zap.String("notification_id", id),
		)
		return fmt.Errorf("failed to mark notification read")
	}

	return nil
}

func (s *notificationService) Subscribe(userID uuid.UUID) (<-chan []byte, func()) {
	return s.hub.Subscribe(userID.String())
}

func (s *notificationService) Notify(ctx context.Context, userID uuid.UUID, typ entity.NotificationType, title, body string, orderID *uuid.UUID) {
	notification := &entity.Notification{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Body:    body,
		OrderID: orderID,
	}

	if err := s.repo.Notification.Create(ctx, notification); err != nil {
		s.log.Warn("Failed to persist notification",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("type", string(typ)),
		)
		return
	}

	s.hub.Push(userID.String(), response.NotificationToResponse(notification))
}
