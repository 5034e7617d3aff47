package database

import (
	"fmt"
	"log"

	"github.com/kmaina/stockroom-api/internal/config"
	"github.com/kmaina/stockroom-api/internal/domain/entity"
	"github.com/kmaina/stockroom-api/internal/domain/enum"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// User-related entities
		&entity.User{},
		&entity.Role{},

		// Catalog entities
		&entity.ProductType{},

		// Order entities
		&entity.PurchaseOrder{},
		&entity.PurchaseOrderItem{},
		&entity.PurchaseOrderHistory{},
		&entity.SalesOrder{},
		&entity.SalesOrderItem{},
		&entity.SalesOrderHistory{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with default roles and the initial admin user
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	roleNames := map[enum.Role]string{
		enum.RoleAdmin:        "Administrator",
		enum.RoleManager:      "Manager",
		enum.RoleStockOfficer: "Stock Officer",
		enum.RoleSalesOfficer: "Sales Officer",
	}

	for _, code := range enum.AllRoles() {
		var existing entity.Role
		if err := db.Where("code = ?", code).First(&existing).Error; err != nil {
			role := entity.Role{Code: code, Name: roleNames[code]}
			if err := db.Create(&role).Error; err != nil {
				log.Printf("Warning: failed to create role %s: %v", code, err)
			}
		}
	}

	// Create the initial admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				var adminRole entity.Role
				if err := db.Where("code = ?", enum.RoleAdmin).First(&adminRole).Error; err != nil {
					log.Printf("Warning: admin role not found: %v", err)
				} else {
					if adminName == "" {
						adminName = "Admin"
					}
					admin := entity.User{
						FirstName: adminName,
						LastName:  "User",
						Email:     adminEmail,
						Password:  string(hashedPassword),
						Provider:  "local",
						Roles:     []entity.Role{adminRole},
					}
					if err := db.Create(&admin).Error; err != nil {
						log.Printf("Warning: failed to create admin user: %v", err)
					} else {
						log.Printf("Created admin user %s", adminEmail)
					}
				}
			}
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
