package service

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/homeserve/backend/internal/broker"
	"github.com/homeserve/backend/internal/models"
	"github.com/homeserve/backend/internal/repository"
	"github.com/homeserve/backend/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	userRepo         *repository.UserRepository
	broker           broker.EventBroker // optional live push channel
}

func NewNotificationService(
	notificationRepo *repository.NotificationRepository,
	userRepo *repository.UserRepository,
	eventBroker broker.EventBroker,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		broker:           eventBroker,
	}
}

// Notify creates a notification row for the given recipient.
//
// Best-effort contract: an unknown recipient returns (nil, nil) instead of an
// error, so callers in the order path never roll back their primary write over
// a missing notification target.
func (s *NotificationService) Notify(
	userID uint,
	title, message string,
	notificationType models.NotificationType,
	relatedOrderID *uint,
) (*models.Notification, error) {
	recipient, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		logger.Log.Error("Failed to resolve notification recipient",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}
	if recipient == nil {
		logger.Log.Warn("Notification recipient not found, skipping",
			zap.Uint("user_id", userID),
		)
		return nil, nil
	}

	notification := &models.Notification{
		UserID:         userID,
		Title:          title,
		Message:        message,
		Type:           notificationType,
		RelatedOrderID: relatedOrderID,
	}

	if relatedOrderID != nil {
		if payload, err := json.Marshal(map[string]uint{"order_id": *relatedOrderID}); err == nil {
			notification.Data = datatypes.JSON(payload)
		}
	}

	if err := s.notificationRepo.CreateNotification(notification); err != nil {
		logger.Log.Error("Failed to create notification",
			zap.Uint("user_id", userID),
			zap.String("type", string(notificationType)),
			zap.Error(err),
		)
		return nil, err
	}

	// Live push is best-effort on top of best-effort: a broker outage must
	// never fail the row insert that already happened.
	s.publish(notification)

	logger.Log.Info("Notification created",
		zap.Uint("notification_id", notification.ID),
		zap.Uint("user_id", userID),
		zap.String("type", string(notificationType)),
	)

	return notification, nil
}

func (s *NotificationService) publish(n *models.Notification) {
	if s.broker == nil {
		return
	}

	event := broker.Event{
		NotificationID: n.ID,
		UserID:         n.UserID,
		Title:          n.Title,
		Message:        n.Message,
		Type:           string(n.Type),
		RelatedOrderID: n.RelatedOrderID,
		CreatedAt:      n.CreatedAt.Format(time.RFC3339),
	}

	if err := s.broker.Publish(event); err != nil {
		logger.Log.Warn("Failed to publish notification event",
			zap.Uint("notification_id", n.ID),
			zap.Error(err),
		)
	}
}

// ListNotifications returns all notifications for a user, newest first
func (s *NotificationService) ListNotifications(userID uint) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.GetNotificationsByUser(userID)
	if err != nil {
		logger.Log.Error("Failed to list notifications",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}

	return notifications, nil
}

// MarkRead flips is_read to true
func (s *NotificationService) MarkRead(notificationID uint) error {
	found, err := s.notificationRepo.MarkRead(notificationID)
	if err != nil {
		logger.Log.Error("Failed to mark notification read",
			zap.Uint("notification_id", notificationID),
			zap.Error(err),
		)
		return err
	}
	if !found {
		return ErrNotificationNotFound
	}

	return nil
}
