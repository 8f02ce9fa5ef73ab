package service

import (
	"errors"
	"strconv"

	"github.com/homeserve/backend/internal/models"
	"github.com/homeserve/backend/internal/repository"
	"github.com/homeserve/backend/pkg/logger"
	"go.uber.org/zap"
)

var (
	ErrInvalidProvider = errors.New("Invalid provider")
	ErrInvalidPrice    = errors.New("Invalid price")
	ErrServiceNotFound = errors.New("Service not found")
	ErrNotOwner        = errors.New("You do not own this service")
	ErrActiveOrders    = errors.New("Service has active orders")
)

type CatalogService struct {
	serviceRepo *repository.ServiceRepository
	userRepo    *repository.UserRepository
	orderRepo   *repository.OrderRepository
	scorer      ProviderScorer
}

func NewCatalogService(
	serviceRepo *repository.ServiceRepository,
	userRepo *repository.UserRepository,
	orderRepo *repository.OrderRepository,
	scorer ProviderScorer,
) *CatalogService {
	return &CatalogService{
		serviceRepo: serviceRepo,
		userRepo:    userRepo,
		orderRepo:   orderRepo,
		scorer:      scorer,
	}
}

// CreateService validates the owning provider and inserts a listing.
// The provider flag is checked at creation only, never re-validated later.
func (s *CatalogService) CreateService(title, description, category, price string, providerID uint) (*models.Service, error) {
	provider, err := s.userRepo.GetUserByID(providerID)
	if err != nil {
		logger.Log.Error("Failed to look up provider",
			zap.Uint("provider_id", providerID),
			zap.Error(err),
		)
		return nil, err
	}
	if provider == nil || !provider.IsProvider {
		logger.Log.Warn("Service creation rejected: invalid provider",
			zap.Uint("provider_id", providerID),
		)
		return nil, ErrInvalidProvider
	}

	if _, err := strconv.ParseFloat(price, 64); err != nil {
		return nil, ErrInvalidPrice
	}

	service := &models.Service{
		Title:       title,
		Description: description,
		Category:    category,
		Price:       price,
		ProviderID:  providerID,
		IsActive:    true,
	}

	if err := s.serviceRepo.CreateService(service); err != nil {
		logger.Log.Error("Failed to create service",
			zap.String("title", title),
			zap.Uint("provider_id", providerID),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Service created",
		zap.Uint("service_id", service.ID),
		zap.String("title", title),
		zap.Uint("provider_id", providerID),
	)

	return service, nil
}

func (s *CatalogService) ListServices() ([]models.Service, error) {
	return s.serviceRepo.GetAllServices()
}

func (s *CatalogService) ProviderServices(providerID uint) ([]models.Service, error) {
	return s.serviceRepo.GetServicesByProvider(providerID)
}

// ServiceDetail is the denormalized catalog read model
type ServiceDetail struct {
	Service      models.Service
	ProviderName string
}

func (s *CatalogService) GetServiceDetail(serviceID uint) (*ServiceDetail, error) {
	service, err := s.serviceRepo.GetServiceByID(serviceID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, ErrServiceNotFound
	}

	return &ServiceDetail{
		Service:      *service,
		ProviderName: service.Provider.Username,
	}, nil
}

// ServicePatch carries the updatable listing fields; nil means keep old value
type ServicePatch struct {
	Title       *string
	Description *string
	Category    *string
	Price       *string
	IsActive    *bool
}

// UpdateService applies a patch after checking the caller owns the listing
func (s *CatalogService) UpdateService(serviceID, providerID uint, patch ServicePatch) error {
	service, err := s.serviceRepo.GetServiceByID(serviceID)
	if err != nil {
		return err
	}
	if service == nil {
		return ErrServiceNotFound
	}
	if service.ProviderID != providerID {
		logger.Log.Warn("Service update rejected: not owner",
			zap.Uint("service_id", serviceID),
			zap.Uint("provider_id", providerID),
			zap.Uint("owner_id", service.ProviderID),
		)
		return ErrNotOwner
	}

	if patch.Title != nil {
		service.Title = *patch.Title
	}
	if patch.Description != nil {
		service.Description = *patch.Description
	}
	if patch.Category != nil {
		service.Category = *patch.Category
	}
	if patch.Price != nil {
		if _, err := strconv.ParseFloat(*patch.Price, 64); err != nil {
			return ErrInvalidPrice
		}
		service.Price = *patch.Price
	}
	if patch.IsActive != nil {
		service.IsActive = *patch.IsActive
	}

	if err := s.serviceRepo.SaveService(service); err != nil {
		logger.Log.Error("Failed to update service",
			zap.Uint("service_id", serviceID),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Service updated",
		zap.Uint("service_id", serviceID),
	)

	return nil
}

// DeleteService removes a listing unless it still has orders in a
// non-terminal status (pending or accepted)
func (s *CatalogService) DeleteService(serviceID, providerID uint) error {
	service, err := s.serviceRepo.GetServiceByID(serviceID)
	if err != nil {
		return err
	}
	if service == nil {
		return ErrServiceNotFound
	}
	if service.ProviderID != providerID {
		return ErrNotOwner
	}

	active, err := s.orderRepo.CountActiveOrdersByService(serviceID)
	if err != nil {
		return err
	}
	if active > 0 {
		logger.Log.Warn("Service delete blocked by active orders",
			zap.Uint("service_id", serviceID),
			zap.Int64("active_orders", active),
		)
		return ErrActiveOrders
	}

	if err := s.serviceRepo.DeleteService(serviceID); err != nil {
		logger.Log.Error("Failed to delete service",
			zap.Uint("service_id", serviceID),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Service deleted",
		zap.Uint("service_id", serviceID),
		zap.Uint("provider_id", providerID),
	)

	return nil
}

// ProviderResult is one row of provider search output
type ProviderResult struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Photo        string  `json:"photo"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email"`
	Location     string  `json:"location"`
	Rating       float64 `json:"rating"`
	Experience   string  `json:"experience"`
	Price        float64 `json:"price"`
	Availability string  `json:"availability"`
}

// SearchProviders maps a free-text service name to a category and lists
// matching providers.
//
// Category resolution is a heuristic: the first existing service whose title
// contains the text (case-insensitive) lends its category; otherwise the text
// itself is treated as the category.
func (s *CatalogService) SearchProviders(serviceName string) ([]ProviderResult, error) {
	category := serviceName
	if match, err := s.serviceRepo.FindServiceByTitle(serviceName); err == nil && match != nil {
		category = match.Category
	}

	providers, err := s.serviceRepo.GetProvidersByCategory(category)
	if err != nil {
		logger.Log.Error("Provider search failed",
			zap.String("category", category),
			zap.Error(err),
		)
		return nil, err
	}

	results := make([]ProviderResult, 0, len(providers))
	for _, provider := range providers {
		result := ProviderResult{
			ID:           provider.ID,
			Name:         provider.Username,
			Email:        provider.Email,
			Photo:        "assets/profiles/default.png",
			Phone:        "Not available",
			Location:     "Not specified",
			Availability: "Available",
		}

		profile, err := s.userRepo.GetProfileByUserID(provider.ID)
		if err == nil && profile != nil {
			if profile.ProfilePicture != nil {
				result.Photo = *profile.ProfilePicture
			}
			if profile.Phone != "" {
				result.Phone = profile.Phone
			}
			if profile.Address != "" {
				result.Location = profile.Address
			}
		}

		count, err := s.serviceRepo.CountServicesByProvider(provider.ID)
		if err != nil {
			return nil, err
		}

		score := s.scorer.Score(count)
		result.Rating = score.Rating
		result.Experience = score.Experience
		result.Price = score.Price

		results = append(results, result)
	}

	logger.Log.Debug("Provider search completed",
		zap.String("service", serviceName),
		zap.String("category", category),
		zap.Int("results", len(results)),
	)

	return results, nil
}
