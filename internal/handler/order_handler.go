package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/homeserve/backend/internal/models"
	"github.com/homeserve/backend/internal/service"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

type CreateOrderRequest struct {
	CustomerID    uint   `json:"customer_id" binding:"required"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	ScheduledDate string `json:"scheduled_date" binding:"required"`
	Notes         string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	UserID uint   `json:"user_id"`
}

// POST /order/create (also mounted as POST /book)
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	order, err := h.orderService.CreateOrder(req.CustomerID, req.ServiceID, req.ScheduledDate, req.Notes)
	if err != nil {
		// NotFound and storage errors alike surface as the envelope;
		// the message text is the contract
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"order_id": order.ID,
	})
}

// GET /order/track/:user_id
func (h *OrderHandler) TrackOrders(c *gin.Context) {
	userID, ok := parseID(c, "user_id")
	if !ok {
		return
	}

	orders, err := h.orderService.TrackOrders(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GET /order/detail/:id
func (h *OrderHandler) OrderDetail(c *gin.Context) {
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	detail, err := h.orderService.GetOrderDetail(orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// POST /order/update-status/:id
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	order, err := h.orderService.UpdateOrderStatus(orderID, models.OrderStatus(req.Status), req.UserID)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			status = http.StatusBadRequest
		case errors.Is(err, service.ErrOrderNotFound):
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  order.Status,
	})
}
