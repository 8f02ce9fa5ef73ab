package repository

import (
	"errors"
	"strings"

	"github.com/homeserve/backend/internal/models"
	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) CreateService(service *models.Service) error {
	return r.db.Create(service).Error
}

func (r *ServiceRepository) GetServiceByID(id uint) (*models.Service, error) {
	var service models.Service
	err := r.db.Preload("Provider").First(&service, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &service, nil
}

func (r *ServiceRepository) GetAllServices() ([]models.Service, error) {
	var services []models.Service
	err := r.db.Order("created_at DESC").Find(&services).Error
	return services, err
}

func (r *ServiceRepository) GetServicesByProvider(providerID uint) ([]models.Service, error) {
	var services []models.Service
	err := r.db.
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&services).Error
	return services, err
}

// FindServiceByTitle returns the first service whose title contains the given
// text (case-insensitive), or nil if none matches.
func (r *ServiceRepository) FindServiceByTitle(text string) (*models.Service, error) {
	var service models.Service
	err := r.db.
		Where("LOWER(title) LIKE ?", "%"+strings.ToLower(text)+"%").
		First(&service).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &service, nil
}

// GetProvidersByCategory returns distinct providers offering at least one
// service in the given category (case-insensitive match).
func (r *ServiceRepository) GetProvidersByCategory(category string) ([]models.User, error) {
	var providers []models.User
	err := r.db.
		Model(&models.User{}).
		Distinct("users.*").
		Joins("JOIN services ON services.provider_id = users.id").
		Where("LOWER(services.category) = ?", strings.ToLower(category)).
		Where("users.is_provider = ?", true).
		Find(&providers).Error
	return providers, err
}

func (r *ServiceRepository) CountServicesByProvider(providerID uint) (int64, error) {
	var count int64
	err := r.db.
		Model(&models.Service{}).
		Where("provider_id = ?", providerID).
		Count(&count).Error
	return count, err
}

func (r *ServiceRepository) SaveService(service *models.Service) error {
	return r.db.Save(service).Error
}

// DeleteService removes the row outright; the catalog has no soft delete
func (r *ServiceRepository) DeleteService(id uint) error {
	return r.db.Delete(&models.Service{}, id).Error
}
