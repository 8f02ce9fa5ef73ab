package repository

import (
	"errors"

	"github.com/homeserve/backend/internal/models"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) CreateOrder(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *OrderRepository) GetOrderByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.
		Preload("Customer").
		Preload("Service").
		Preload("Service.Provider").
		First(&order, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &order, nil
}

func (r *OrderRepository) GetOrdersByCustomer(customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Preload("Service").
		Preload("Service.Provider").
		Where("customer_id = ?", customerID).
		Order("date_ordered DESC").
		Find(&orders).Error

	return orders, err
}

// UpdateStatus overwrites the stored status unconditionally. Read-modify-write
// without locking: concurrent updates race with last-write-wins semantics.
func (r *OrderRepository) UpdateStatus(orderID uint, status models.OrderStatus) error {
	return r.db.
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status).Error
}

// CountActiveOrdersByService counts orders still in a non-terminal status
// (pending or accepted) for the given service. Used to block catalog deletes.
func (r *OrderRepository) CountActiveOrdersByService(serviceID uint) (int64, error) {
	var count int64
	err := r.db.
		Model(&models.Order{}).
		Where("service_id = ?", serviceID).
		Where("status IN ?", []models.OrderStatus{models.StatusPending, models.StatusAccepted}).
		Count(&count).Error
	return count, err
}
