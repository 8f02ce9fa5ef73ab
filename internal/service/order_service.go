package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/homeserve/backend/internal/models"
	"github.com/homeserve/backend/internal/repository"
	"github.com/homeserve/backend/pkg/logger"
	"go.uber.org/zap"
)

var (
	ErrOrderNotFound = errors.New("Order not found")
	ErrInvalidStatus = errors.New("Invalid status")
)

type OrderService struct {
	orderRepo       *repository.OrderRepository
	serviceRepo     *repository.ServiceRepository
	userRepo        *repository.UserRepository
	notificationSvc *NotificationService
}

func NewOrderService(
	orderRepo *repository.OrderRepository,
	serviceRepo *repository.ServiceRepository,
	userRepo *repository.UserRepository,
	notificationSvc *NotificationService,
) *OrderService {
	return &OrderService{
		orderRepo:       orderRepo,
		serviceRepo:     serviceRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
	}
}

// CreateOrder books a service for a customer. Both references are validated
// up front; the order insert is the primary write and the provider
// notification is best-effort on top of it.
func (s *OrderService) CreateOrder(customerID, serviceID uint, scheduledDate, notes string) (*models.Order, error) {
	start := time.Now()

	logger.Log.Debug("Processing order creation",
		zap.Uint("customer_id", customerID),
		zap.Uint("service_id", serviceID),
	)

	customer, err := s.userRepo.GetUserByID(customerID)
	if err != nil {
		logger.Log.Error("Failed to look up customer",
			zap.Uint("customer_id", customerID),
			zap.Error(err),
		)
		return nil, err
	}
	if customer == nil {
		logger.Log.Warn("Order rejected: customer not found",
			zap.Uint("customer_id", customerID),
		)
		return nil, ErrUserNotFound
	}

	service, err := s.serviceRepo.GetServiceByID(serviceID)
	if err != nil {
		logger.Log.Error("Failed to look up service",
			zap.Uint("service_id", serviceID),
			zap.Error(err),
		)
		return nil, err
	}
	if service == nil {
		logger.Log.Warn("Order rejected: service not found",
			zap.Uint("service_id", serviceID),
		)
		return nil, ErrServiceNotFound
	}

	order := &models.Order{
		CustomerID:    customerID,
		ServiceID:     serviceID,
		Status:        models.StatusPending,
		ScheduledDate: scheduledDate,
		Notes:         notes,
	}

	if err := s.orderRepo.CreateOrder(order); err != nil {
		logger.Log.Error("Failed to create order",
			zap.Uint("customer_id", customerID),
			zap.Uint("service_id", serviceID),
			zap.Error(err),
		)
		return nil, err
	}

	// Exactly one "new_order" notification to the provider. A failure here
	// does not roll back the order that was just created.
	notification, err := s.notificationSvc.Notify(
		service.ProviderID,
		"New Service Booking",
		fmt.Sprintf("You have a new booking for %s on %s", service.Title, scheduledDate),
		models.NotificationNewOrder,
		&order.ID,
	)
	if err != nil || notification == nil {
		logger.Log.Warn("Provider notification failed for new order",
			zap.Uint("order_id", order.ID),
			zap.Uint("provider_id", service.ProviderID),
			zap.Error(err),
		)
	}

	logger.Log.Info("Order created",
		zap.Uint("order_id", order.ID),
		zap.Uint("customer_id", customerID),
		zap.Uint("service_id", serviceID),
		zap.Duration("total_duration", time.Since(start)),
	)

	return order, nil
}

// TrackedOrder is the denormalized per-order view returned by order tracking
type TrackedOrder struct {
	OrderID         uint   `json:"order_id"`
	Service         string `json:"service"`
	Status          string `json:"status"`
	ScheduledDate   string `json:"scheduled_date"`
	Notes           string `json:"notes"`
	ProviderName    string `json:"provider_name"`
	ProviderPhone   string `json:"provider_phone"`
	ProviderAddress string `json:"provider_address"`
	Location        string `json:"location"`
}

// TrackOrders lists a customer's orders enriched with service and provider
// details. Missing profiles fall back to placeholder strings; the location
// field is a stub, no geolocation is computed.
func (s *OrderService) TrackOrders(customerID uint) ([]TrackedOrder, error) {
	orders, err := s.orderRepo.GetOrdersByCustomer(customerID)
	if err != nil {
		logger.Log.Error("Failed to fetch orders",
			zap.Uint("customer_id", customerID),
			zap.Error(err),
		)
		return nil, err
	}

	tracked := make([]TrackedOrder, 0, len(orders))
	for _, order := range orders {
		item := TrackedOrder{
			OrderID:         order.ID,
			Service:         order.Service.Title,
			Status:          string(order.Status),
			ScheduledDate:   order.ScheduledDate,
			Notes:           order.Notes,
			ProviderName:    order.Service.Provider.Username,
			ProviderPhone:   "Not available",
			ProviderAddress: "Not specified",
			Location:        "Not specified",
		}

		profile, err := s.userRepo.GetProfileByUserID(order.Service.ProviderID)
		if err == nil && profile != nil {
			if profile.Phone != "" {
				item.ProviderPhone = profile.Phone
			}
			if profile.Address != "" {
				item.ProviderAddress = profile.Address
				item.Location = profile.Address
			}
		}

		tracked = append(tracked, item)
	}

	return tracked, nil
}

// OrderDetail is the full denormalized view of a single order
type OrderDetail struct {
	OrderID       uint   `json:"order_id"`
	ServiceID     uint   `json:"service_id"`
	Service       string `json:"service"`
	Category      string `json:"category"`
	Price         string `json:"price"`
	ProviderID    uint   `json:"provider_id"`
	ProviderName  string `json:"provider_name"`
	CustomerID    uint   `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	Status        string `json:"status"`
	ScheduledDate string `json:"scheduled_date"`
	DateOrdered   string `json:"date_ordered"`
	Notes         string `json:"notes"`
}

func (s *OrderService) GetOrderDetail(orderID uint) (*OrderDetail, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	return &OrderDetail{
		OrderID:       order.ID,
		ServiceID:     order.ServiceID,
		Service:       order.Service.Title,
		Category:      order.Service.Category,
		Price:         order.Service.Price,
		ProviderID:    order.Service.ProviderID,
		ProviderName:  order.Service.Provider.Username,
		CustomerID:    order.CustomerID,
		CustomerName:  order.Customer.Username,
		Status:        string(order.Status),
		ScheduledDate: order.ScheduledDate,
		DateOrdered:   order.DateOrdered.Format(time.RFC3339),
		Notes:         order.Notes,
	}, nil
}

// UpdateOrderStatus overwrites the status and fans out notifications.
//
// There is deliberately no transition guard: any valid status may replace any
// other, including reversals. The customer is always notified; the provider is
// notified only when someone other than the provider made the change.
func (s *OrderService) UpdateOrderStatus(orderID uint, newStatus models.OrderStatus, actorUserID uint) (*models.Order, error) {
	if !models.ValidStatus(newStatus) {
		logger.Log.Warn("Status update rejected: invalid status",
			zap.Uint("order_id", orderID),
			zap.String("status", string(newStatus)),
		)
		return nil, ErrInvalidStatus
	}

	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if err := s.orderRepo.UpdateStatus(orderID, newStatus); err != nil {
		logger.Log.Error("Failed to update order status",
			zap.Uint("order_id", orderID),
			zap.String("status", string(newStatus)),
			zap.Error(err),
		)
		return nil, err
	}
	order.Status = newStatus

	message := fmt.Sprintf("Your order for %s is now %s", order.Service.Title, newStatus)

	if _, err := s.notificationSvc.Notify(
		order.CustomerID,
		"Order Status Update",
		message,
		models.NotificationOrderStatus,
		&order.ID,
	); err != nil {
		logger.Log.Warn("Customer notification failed for status update",
			zap.Uint("order_id", orderID),
			zap.Error(err),
		)
	}

	if actorUserID != order.Service.ProviderID {
		if _, err := s.notificationSvc.Notify(
			order.Service.ProviderID,
			"Order Status Update",
			fmt.Sprintf("Order #%d for %s is now %s", order.ID, order.Service.Title, newStatus),
			models.NotificationOrderStatus,
			&order.ID,
		); err != nil {
			logger.Log.Warn("Provider notification failed for status update",
				zap.Uint("order_id", orderID),
				zap.Error(err),
			)
		}
	}

	logger.Log.Info("Order status updated",
		zap.Uint("order_id", orderID),
		zap.String("status", string(newStatus)),
		zap.Uint("actor_id", actorUserID),
	)

	return order, nil
}
