package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kmaina/stockroom-api/internal/config"
	domainRepo "github.com/kmaina/stockroom-api/internal/domain/repository"
	"github.com/kmaina/stockroom-api/internal/presentation/http/handler"
	"github.com/kmaina/stockroom-api/internal/presentation/http/middleware"
	"github.com/kmaina/stockroom-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth          *handler.AuthHandler
	ProductType   *handler.ProductTypeHandler
	PurchaseOrder *handler.PurchaseOrderHandler
	SalesOrder    *handler.SalesOrderHandler
	User          *handler.UserHandler
	Dashboard     *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(&deps.Cfg.RateLimit)
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.GetSummary)

	// Product catalog
	registerProductTypeRoutes(protected, h)

	// Purchase orders
	registerPurchaseOrderRoutes(protected, h, deps)

	// Sales orders
	registerSalesOrderRoutes(protected, h, deps)

	// Users (Admin)
	registerUserRoutes(protected, h)
}

func registerProductTypeRoutes(protected *gin.RouterGroup, h *Handlers) {
	productTypes := protected.Group("/product-types")
	{
		productTypes.GET("", h.ProductType.List)
		productTypes.POST("", h.ProductType.Create)
		productTypes.GET("/:id", h.ProductType.Get)
		productTypes.PUT("/:id", h.ProductType.Update)
		productTypes.DELETE("/:id", h.ProductType.Delete)
	}
}

func registerPurchaseOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}

	orders := protected.Group("/purchase-orders")
	{
		orders.GET("", h.PurchaseOrder.List)
		// Order creation uses idempotency middleware to prevent duplicates
		orders.POST("", middleware.IdempotencyRequired(idempotency), h.PurchaseOrder.Create)
		orders.GET("/:id", h.PurchaseOrder.Get)
		orders.PUT("/:id", h.PurchaseOrder.Update)
		orders.DELETE("/:id", h.PurchaseOrder.Delete)
		orders.DELETE("/:id/items/:item_id", h.PurchaseOrder.DeleteItem)
		orders.POST("/:id/submit", middleware.Idempotency(idempotency), h.PurchaseOrder.Submit)
		orders.POST("/:id/approve", middleware.Idempotency(idempotency), h.PurchaseOrder.Approve)
		orders.POST("/:id/return", middleware.Idempotency(idempotency), h.PurchaseOrder.Return)
		orders.GET("/:id/history", h.PurchaseOrder.History)
	}
}

func registerSalesOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}

	orders := protected.Group("/sales-orders")
	{
		orders.GET("", h.SalesOrder.List)
		// Order creation uses idempotency middleware to prevent duplicates
		orders.POST("", middleware.IdempotencyRequired(idempotency), h.SalesOrder.Create)
		orders.GET("/:id", h.SalesOrder.Get)
		orders.PUT("/:id", h.SalesOrder.Update)
		orders.DELETE("/:id", h.SalesOrder.Delete)
		orders.DELETE("/:id/items/:item_id", h.SalesOrder.DeleteItem)
		orders.POST("/:id/submit", middleware.Idempotency(idempotency), h.SalesOrder.Submit)
		orders.POST("/:id/approve", middleware.Idempotency(idempotency), h.SalesOrder.Approve)
		orders.POST("/:id/return", middleware.Idempotency(idempotency), h.SalesOrder.Return)
		orders.GET("/:id/history", h.SalesOrder.History)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequireRole("ADMIN"))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
		users.POST("/:id/roles", h.User.AssignRole)
		users.DELETE("/:id/roles", h.User.RemoveRole)
	}

	roles := protected.Group("/roles")
	roles.Use(middleware.RequireRole("ADMIN"))
	{
		roles.GET("", h.User.ListRoles)
	}
}
