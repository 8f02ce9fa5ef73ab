package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/homeserve/backend/internal/broker"
	"github.com/homeserve/backend/internal/config"
	"github.com/homeserve/backend/internal/database"
	"github.com/homeserve/backend/internal/handler"
	"github.com/homeserve/backend/internal/middleware"
	"github.com/homeserve/backend/internal/repository"
	"github.com/homeserve/backend/internal/service"
	"github.com/homeserve/backend/pkg/logger"
)

func main() {
	cfg := config.Load()
	log.Println("Config loaded successfully")

	if err := logger.Init(cfg.Environment != "production"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	database.Connect(cfg)
	database.Migrate()

	// Redis broker feeds the live notification stream; the REST API works
	// without it, so a missing REDIS_URL just disables the push channel
	var eventBroker broker.EventBroker
	if cfg.RedisURL != "" {
		redisBroker, err := broker.NewRedisEventBroker(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to initialize Redis broker: %v", err)
		}
		defer redisBroker.Close()
		eventBroker = redisBroker
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.DB)
	serviceRepo := repository.NewServiceRepository(database.DB)
	orderRepo := repository.NewOrderRepository(database.DB)
	notificationRepo := repository.NewNotificationRepository(database.DB)

	// Initialize services
	accountService := service.NewAccountService(userRepo, cfg.JWTSecret, cfg.JWTExpiry, cfg.Environment)
	notificationService := service.NewNotificationService(notificationRepo, userRepo, eventBroker)
	catalogService := service.NewCatalogService(serviceRepo, userRepo, orderRepo, service.PlaceholderScorer{})
	orderService := service.NewOrderService(orderRepo, serviceRepo, userRepo, notificationService)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	orderHandler := handler.NewOrderHandler(orderService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	// Setup Gin router
	router := gin.Default()
	router.HandleMethodNotAllowed = true
	router.Use(middleware.RequestID())

	// CSRF protection is intentionally absent (the clients are not
	// browser-form based); CORS is wide open to match
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Account store
	router.POST("/register", accountHandler.Register)
	router.POST("/login", accountHandler.Login)
	router.GET("/profile/:id", accountHandler.GetProfile)
	router.POST("/profile/:id/update", accountHandler.UpdateProfile)

	// Service catalog
	router.POST("/service/create", catalogHandler.CreateService)
	router.GET("/service/list", catalogHandler.ListServices)
	router.GET("/service/providers", catalogHandler.SearchProviders)
	router.GET("/service/detail/:id", catalogHandler.ServiceDetail)
	router.GET("/service/provider/:provider_id", catalogHandler.ProviderServices)
	router.PUT("/service/:id", catalogHandler.UpdateService)
	router.DELETE("/service/:id", catalogHandler.DeleteService)

	// Order ledger
	router.POST("/order/create", orderHandler.CreateOrder)
	router.POST("/book", orderHandler.CreateOrder)
	router.GET("/order/track/:user_id", orderHandler.TrackOrders)
	router.GET("/order/detail/:id", orderHandler.OrderDetail)
	router.POST("/order/update-status/:id", orderHandler.UpdateStatus)

	// Notifications
	router.GET("/notification/:user_id", notificationHandler.ListNotifications)
	router.POST("/mark-read/:id", notificationHandler.MarkRead)

	// Live notification stream (JWT-gated, needs the broker)
	if eventBroker != nil {
		streamHandler := handler.NewStreamHandler(eventBroker)
		go streamHandler.Run()
		router.GET("/ws", middleware.AuthMiddleware(cfg.JWTSecret), streamHandler.HandleStream)
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
