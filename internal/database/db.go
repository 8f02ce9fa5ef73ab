package database

import (
	"log"

	"github.com/homeserve/backend/internal/config"
	"github.com/homeserve/backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})

	if err != nil {
		log.Fatal("Failed to connect database:", err)
	}

	log.Println("Database connected successfully")
}

func Migrate() {
	// Payment is migrated even though no endpoint touches it, to stay
	// schema-compatible with existing data.
	err := DB.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Service{},
		&models.Order{},
		&models.Payment{},
		&models.Notification{},
	)

	if err != nil {
		log.Fatal("Migration failed:", err)
	}

	log.Println("Database migration completed")
}
