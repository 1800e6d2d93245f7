package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/upb/taskhub/models"
	"github.com/upb/taskhub/repositories"
	"go.uber.org/zap"
)

// NotificationService reads and acknowledges a user's stored notifications
type NotificationService struct {
	notifications repositories.NotificationRepository
	logger        *zap.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifications repositories.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, logger: logger}
}

// ListForUser returns the user's notifications newest first
func (s *NotificationService) ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, page repositories.Page) ([]*models.Notification, error) {
	list, err := s.notifications.ListForUser(ctx, userID, unreadOnly, page)
	if err != nil {
		return nil, WrapInternal("failed to list notifications", err)
	}
	if list == nil {
		list = []*models.Notification{}
	}
	return list, nil
}

// MarkRead marks one of the user's notifications read. Someone else's
// notification is reported as not found.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*models.Notification, error) {
	n, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		return nil, fromRepository(err, ErrNotificationNotFound, "get notification")
	}
	if n.UserID != userID {
		return nil, ErrNotificationNotFound
	}
	if n.IsRead() {
		return n, nil
	}

	if err := s.notifications.MarkRead(ctx, notificationID); err != nil {
		return nil, fromRepository(err, ErrNotificationNotFound, "mark notification read")
	}
	now := time.Now()
	n.ReadAt = &now
	return n, nil
}
