package models

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationNewOrder    NotificationType = "new_order"
	NotificationOrderStatus NotificationType = "order_status"
	NotificationMessage     NotificationType = "message"
	NotificationSystem      NotificationType = "system"
)

type Notification struct {
	ID      uint             `gorm:"primaryKey" json:"id"`
	UserID  uint             `gorm:"not null;index" json:"user_id"`
	Title   string           `gorm:"type:varchar(100);not null" json:"title"`
	Message string           `gorm:"type:text" json:"message"`
	Type    NotificationType `gorm:"type:varchar(20);not null" json:"notification_type"`
	// RelatedOrderID is nulled if the order is later removed; the
	// notification row itself persists.
	RelatedOrderID *uint          `json:"related_order_id"`
	Data           datatypes.JSON `json:"data,omitempty"`
	IsRead         bool           `gorm:"default:false" json:"is_read"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`

	User         User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	RelatedOrder *Order `gorm:"foreignKey:RelatedOrderID;constraint:OnDelete:SET NULL" json:"-"`
}
