package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/homeserve/backend/internal/service"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// GET /notification/:user_id
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := parseID(c, "user_id")
	if !ok {
		return
	}

	notifications, err := h.notificationService.ListNotifications(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	data := make([]gin.H, 0, len(notifications))
	for _, n := range notifications {
		data = append(data, gin.H{
			"id":                n.ID,
			"title":             n.Title,
			"message":           n.Message,
			"notification_type": n.Type,
			"is_read":           n.IsRead,
			"created_at":        n.CreatedAt.Format(time.RFC3339),
			"related_order_id":  n.RelatedOrderID,
		})
	}

	c.JSON(http.StatusOK, gin.H{"notifications": data})
}

// POST /mark-read/:id
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(notificationID); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "Notification not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
