package testutil

import (
	"testing"

	"gorm.io/gorm"

	"github.com/homeserve/backend/internal/models"
	"github.com/homeserve/backend/internal/utils"
)

// CreateTestUser inserts a user with a hashed password and a paired profile
func CreateTestUser(t *testing.T, db *gorm.DB, username, password string, isProvider bool, phone, address string) *models.User {
	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: passwordHash,
		IsProvider:   isProvider,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	profile := &models.Profile{UserID: user.ID, Phone: phone, Address: address}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("Failed to create test profile: %v", err)
	}

	return user
}

// CreateTestUserWithoutProfile inserts a bare user row (exercises the
// placeholder fallbacks on the read paths)
func CreateTestUserWithoutProfile(t *testing.T, db *gorm.DB, username string, isProvider bool) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "unused",
		IsProvider:   isProvider,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestService inserts a listing for the given provider
func CreateTestService(t *testing.T, db *gorm.DB, title, category, price string, providerID uint) *models.Service {
	service := &models.Service{
		Title:      title,
		Category:   category,
		Price:      price,
		ProviderID: providerID,
		IsActive:   true,
	}
	if err := db.Create(service).Error; err != nil {
		t.Fatalf("Failed to create test service: %v", err)
	}
	return service
}

// CreateTestOrder inserts an order in the given status
func CreateTestOrder(t *testing.T, db *gorm.DB, customerID, serviceID uint, status models.OrderStatus) *models.Order {
	order := &models.Order{
		CustomerID:    customerID,
		ServiceID:     serviceID,
		Status:        status,
		ScheduledDate: "2024-06-01",
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("Failed to create test order: %v", err)
	}
	return order
}
