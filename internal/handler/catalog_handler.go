package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/homeserve/backend/internal/models"
	"github.com/homeserve/backend/internal/service"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

type CreateServiceRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       string `json:"price" binding:"required"`
	ProviderID  uint   `json:"provider_id" binding:"required"`
}

type UpdateServiceRequest struct {
	ProviderID  uint    `json:"provider_id" binding:"required"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Price       *string `json:"price"`
	IsActive    *bool   `json:"is_active"`
}

type DeleteServiceRequest struct {
	ProviderID uint `json:"provider_id" binding:"required"`
}

// POST /service/create
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req CreateServiceRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	svc, err := h.catalogService.CreateService(req.Title, req.Description, req.Category, req.Price, req.ProviderID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"service_id": svc.ID,
	})
}

// GET /service/list
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.catalogService.ListServices()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": serviceList(services)})
}

// GET /service/provider/:provider_id
func (h *CatalogHandler) ProviderServices(c *gin.Context) {
	providerID, ok := parseID(c, "provider_id")
	if !ok {
		return
	}

	services, err := h.catalogService.ProviderServices(providerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": serviceList(services)})
}

// GET /service/providers?service=NAME
func (h *CatalogHandler) SearchProviders(c *gin.Context) {
	serviceName := c.Query("service")
	if serviceName == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Service name is required",
		})
		return
	}

	providers, err := h.catalogService.SearchProviders(serviceName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": fmt.Sprintf("Error fetching providers: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"providers": providers,
	})
}

// GET /service/detail/:id
func (h *CatalogHandler) ServiceDetail(c *gin.Context) {
	serviceID, ok := parseID(c, "id")
	if !ok {
		return
	}

	detail, err := h.catalogService.GetServiceDetail(serviceID)
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Service not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": fmt.Sprintf("Error fetching service details: %s", err.Error()),
		})
		return
	}

	svc := detail.Service
	c.JSON(http.StatusOK, gin.H{
		"id":            svc.ID,
		"title":         svc.Title,
		"description":   svc.Description,
		"category":      svc.Category,
		"price":         svc.Price,
		"rating":        svc.Rating,
		"duration":      "1-2 hours", // stub, not modeled
		"provider_id":   svc.ProviderID,
		"provider_name": detail.ProviderName,
		"available":     svc.IsActive,
		"features": []string{
			fmt.Sprintf("Professional %s service", svc.Category),
			"Quality guarantee",
			"Experienced professionals",
			"Tools and equipment included",
		},
		"image": svc.Image,
	})
}

// PUT /service/:id
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	serviceID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	patch := service.ServicePatch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		IsActive:    req.IsActive,
	}

	if err := h.catalogService.UpdateService(serviceID, req.ProviderID, patch); err != nil {
		h.writeCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Service updated successfully",
	})
}

// DELETE /service/:id
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	serviceID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req DeleteServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	if err := h.catalogService.DeleteService(serviceID, req.ProviderID); err != nil {
		h.writeCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Service deleted successfully",
	})
}

func (h *CatalogHandler) writeCatalogError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, service.ErrServiceNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrNotOwner):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrActiveOrders):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidPrice):
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{
		"success": false,
		"message": err.Error(),
	})
}

// serviceList projects catalog rows into the wire shape shared by the
// list endpoints (price stays a decimal string)
func serviceList(services []models.Service) []gin.H {
	result := make([]gin.H, 0, len(services))
	for _, svc := range services {
		result = append(result, gin.H{
			"id":          svc.ID,
			"title":       svc.Title,
			"description": svc.Description,
			"category":    svc.Category,
			"price":       svc.Price,
			"provider_id": svc.ProviderID,
			"rating":      svc.Rating,
		})
	}
	return result
}
