package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/homeserve/backend/internal/service"
	"github.com/homeserve/backend/pkg/logger"
	"go.uber.org/zap"
)

type AccountHandler struct {
	accountService *service.AccountService
}

func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

type RegisterRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Email      string `json:"email"`
	IsProvider bool   `json:"is_provider"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// POST /register
func (h *AccountHandler) Register(c *gin.Context) {
	var req RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Registration request parsing failed",
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	user, err := h.accountService.Register(req.Username, req.Password, req.Email, req.IsProvider, req.Phone, req.Address)
	if err != nil {
		// Expected failures keep the 200 + envelope contract of the API
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user_id": user.ID,
	})
}

// POST /login
func (h *AccountHandler) Login(c *gin.Context) {
	var req LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	user, token, err := h.accountService.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "Invalid credentials",
		})
		return
	}

	// Token rides in an HTTP-only cookie; the body keeps the plain envelope
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		"token",
		token,
		7*24*60*60, // 7 days
		"/",
		"",
		h.accountService.IsProduction(),
		true,
	)

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"user_id":     user.ID,
		"is_provider": user.IsProvider,
	})
}

// GET /profile/:id
func (h *AccountHandler) GetProfile(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}

	view, err := h.accountService.GetProfile(userID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"username":    view.Username,
		"email":       view.Email,
		"phone":       view.Phone,
		"address":     view.Address,
		"is_provider": view.IsProvider,
	})
}

// POST /profile/:id/update
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	if err := h.accountService.UpdateProfile(userID, req.Email, req.Phone, req.Address); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
	})
}

// parseID reads an integer path parameter, answering 400 on garbage
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid " + name,
		})
		return 0, false
	}
	return uint(id), true
}
