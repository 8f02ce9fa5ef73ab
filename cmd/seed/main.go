package main

import (
	"log"

	"github.com/homeserve/backend/internal/config"
	"github.com/homeserve/backend/internal/database"
	"github.com/homeserve/backend/internal/models"
	"github.com/homeserve/backend/internal/utils"
)

// Seeds a demo provider with a couple of listings and a demo customer.
// Safe to re-run: existing usernames are left alone.
func main() {
	cfg := config.Load()
	database.Connect(cfg)
	database.Migrate()

	provider := seedUser("demo_provider", "provider@example.com", "Provider123", true, "555-0101", "12 Canal Street")
	seedUser("demo_customer", "customer@example.com", "Customer123", false, "555-0102", "7 Hill Road")

	services := []models.Service{
		{Title: "Pipe Repair", Description: "Leak fixes and pipe replacement", Category: models.CategoryPlumbing, Price: "75.00", ProviderID: provider.ID, IsActive: true},
		{Title: "Deep Cleaning", Description: "Full-home deep clean", Category: models.CategoryCleaning, Price: "120.00", ProviderID: provider.ID, IsActive: true},
	}

	for _, svc := range services {
		var existing models.Service
		if err := database.DB.Where("title = ? AND provider_id = ?", svc.Title, svc.ProviderID).First(&existing).Error; err == nil {
			log.Println("Service already exists:", svc.Title)
			continue
		}
		if err := database.DB.Create(&svc).Error; err != nil {
			log.Fatal("Failed to create service:", err)
		}
		log.Println("Service created:", svc.Title)
	}
}

func seedUser(username, email, password string, isProvider bool, phone, address string) *models.User {
	var user models.User
	if err := database.DB.Where("username = ?", username).First(&user).Error; err == nil {
		log.Println("User already exists:", username)
		return &user
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	user = models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		IsProvider:   isProvider,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		log.Fatal("Failed to create user:", err)
	}

	profile := models.Profile{UserID: user.ID, Phone: phone, Address: address}
	if err := database.DB.Create(&profile).Error; err != nil {
		log.Fatal("Failed to create profile:", err)
	}

	log.Println("User created:", username)
	return &user
}
