package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kmaina/stockroom-api/internal/application/service"
	"github.com/kmaina/stockroom-api/internal/config"
	"github.com/kmaina/stockroom-api/internal/infrastructure/database"
	"github.com/kmaina/stockroom-api/internal/infrastructure/repository"
	"github.com/kmaina/stockroom-api/internal/presentation/http/handler"
	"github.com/kmaina/stockroom-api/internal/presentation/http/routes"
	"github.com/kmaina/stockroom-api/pkg/oauth"
	"github.com/kmaina/stockroom-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	productTypeRepo := repository.NewProductTypeRepository(db)
	purchaseOrderRepo := repository.NewPurchaseOrderRepository(db)
	purchaseHistoryRepo := repository.NewPurchaseOrderHistoryRepository(db)
	salesOrderRepo := repository.NewSalesOrderRepository(db)
	salesHistoryRepo := repository.NewSalesOrderHistoryRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Periodically purge expired idempotency keys
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				log.Printf("Warning: Failed to clean up idempotency keys: %v", err)
			}
		}
	}()

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, googleOAuthService)
	userService := service.NewUserService(userRepo, roleRepo)
	productTypeService := service.NewProductTypeService(productTypeRepo)
	purchaseOrderService := service.NewPurchaseOrderService(purchaseOrderRepo, purchaseHistoryRepo, productTypeRepo)
	salesOrderService := service.NewSalesOrderService(salesOrderRepo, salesHistoryRepo, productTypeRepo)
	dashboardService := service.NewDashboardService(purchaseOrderRepo, salesOrderRepo, productTypeRepo, userRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		ProductType:   handler.NewProductTypeHandler(productTypeService),
		PurchaseOrder: handler.NewPurchaseOrderHandler(purchaseOrderService),
		SalesOrder:    handler.NewSalesOrderHandler(salesOrderService),
		User:          handler.NewUserHandler(userService),
		Dashboard:     handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
