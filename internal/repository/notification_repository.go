package repository

import (
	"github.com/homeserve/backend/internal/models"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// GetNotificationsByUser returns all notifications for a user, newest first
func (r *NotificationRepository) GetNotificationsByUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error

	return notifications, err
}

// MarkRead flips is_read to true and reports whether the row existed
func (r *NotificationRepository) MarkRead(id uint) (bool, error) {
	result := r.db.
		Model(&models.Notification{}).
		Where("id = ?", id).
		Update("is_read", true)

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
