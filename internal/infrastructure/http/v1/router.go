// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"stockyard/internal/domain/auth"
	"stockyard/internal/domain/catalogs/category"
	"stockyard/internal/domain/catalogs/product"
	"stockyard/internal/domain/catalogs/warehouse"
	"stockyard/internal/domain/ledger"
	"stockyard/internal/domain/reports"
	"stockyard/internal/domain/stocklevel"
	"stockyard/internal/infrastructure/http/v1/handlers"
	"stockyard/internal/infrastructure/http/v1/middleware"
	"stockyard/internal/infrastructure/storage/postgres"
	"stockyard/internal/infrastructure/storage/postgres/catalog_repo"
	"stockyard/internal/infrastructure/storage/postgres/ledger_repo"
	"stockyard/internal/infrastructure/storage/postgres/report_repo"
	"stockyard/internal/infrastructure/storage/postgres/stock_repo"
	"stockyard/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks).
	Pool *postgres.Pool

	// TxManager drives transactions and hands queriers to repositories.
	TxManager *postgres.TxManager

	// Logger for request logging.
	Logger *logger.Logger

	// JWTValidator for token validation.
	JWTValidator middleware.JWTValidator

	// AuthService for authentication and user management endpoints.
	AuthService *auth.Service

	// ActivityLog records movement operations; nil disables recording.
	ActivityLog *postgres.ActivityLog
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	adminOnly := middleware.RequireRole(string(auth.RoleAdmin))

	// API v1
	api := router.Group("/api/v1")
	{
		// Public auth endpoints
		api.POST("/auth/login", authHandler.Login)

		// Everything below requires a valid token
		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		protected.GET("/auth/me", authHandler.Me)

		registerUserRoutes(protected, authHandler, adminOnly)
		registerCatalogRoutes(protected, cfg, baseHandler, adminOnly)
		registerStockRoutes(protected, cfg, baseHandler, adminOnly)
		registerMovementRoutes(protected, cfg, baseHandler)
		registerReportRoutes(protected, cfg, baseHandler)
		registerActivityRoutes(protected, cfg, baseHandler, adminOnly)
	}

	return router
}

// registerUserRoutes registers user management endpoints (admin only).
func registerUserRoutes(rg *gin.RouterGroup, handler *handlers.AuthHandler, adminOnly gin.HandlerFunc) {
	users := rg.Group("/users")
	users.Use(adminOnly)
	{
		users.GET("", handler.ListUsers)
		users.POST("", handler.CreateUser)
		users.GET("/:id", handler.GetUser)
		users.PUT("/:id", handler.UpdateUser)
		users.DELETE("/:id", handler.DeleteUser)
	}
}

// registerCatalogRoutes registers master data endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig, baseHandler *handlers.BaseHandler, adminOnly gin.HandlerFunc) {
	categoryRepo := catalog_repo.NewCategoryRepo(cfg.TxManager)

	// --- CATEGORIES ---
	categoriesGroup := rg.Group("/categories")
	{
		service := category.NewService(categoryRepo, cfg.TxManager)
		handler := handlers.NewCategoryHandler(baseHandler, service)
		RegisterCatalogRoutes(categoriesGroup, handler, adminOnly)
	}

	// --- PRODUCTS ---
	{
		repo := catalog_repo.NewProductRepo(cfg.TxManager)
		service := product.NewService(repo, categoryRepo, cfg.TxManager)
		handler := handlers.NewProductHandler(baseHandler, service)
		RegisterCatalogRoutes(rg.Group("/products"), handler, adminOnly)
		categoriesGroup.GET("/:id/products", handler.ListByCategory)
	}

	// --- WAREHOUSES ---
	{
		repo := catalog_repo.NewWarehouseRepo(cfg.TxManager)
		service := warehouse.NewService(repo, cfg.TxManager)
		handler := handlers.NewWarehouseHandler(baseHandler, service)
		RegisterCatalogRoutes(rg.Group("/warehouses"), handler, adminOnly)
	}
}

// registerStockRoutes registers stock level endpoints. Direct quantity
// edits bypass the movement journals, so they are admin only.
func registerStockRoutes(rg *gin.RouterGroup, cfg RouterConfig, baseHandler *handlers.BaseHandler, adminOnly gin.HandlerFunc) {
	repo := stock_repo.NewLevelRepo(cfg.TxManager)
	service := stocklevel.NewService(repo, cfg.TxManager)
	handler := handlers.NewStockLevelHandler(baseHandler, service)

	levels := rg.Group("/stock-levels")
	{
		levels.GET("", handler.List)
		levels.GET("/by-pair", handler.GetByPair)
		levels.GET("/:id", handler.Get)
		levels.POST("", adminOnly, handler.Create)
		levels.PUT("/:id", adminOnly, handler.Update)
		levels.DELETE("/:id", adminOnly, handler.Delete)
	}
}

// registerMovementRoutes registers the movement journal endpoints.
func registerMovementRoutes(rg *gin.RouterGroup, cfg RouterConfig, baseHandler *handlers.BaseHandler) {
	service := ledger.NewService(ledger.Config{
		TxManager: cfg.TxManager,
		StockIn:   ledger_repo.NewStockInRepo(cfg.TxManager),
		StockOut:  ledger_repo.NewStockOutRepo(cfg.TxManager),
		Transfers: ledger_repo.NewTransferRepo(cfg.TxManager),
		Levels:    stock_repo.NewLevelRepo(cfg.TxManager),
		Activity:  activityRecorder(cfg.ActivityLog),
	})

	RegisterMovementRoutes(rg.Group("/stock-in"), handlers.NewStockInHandler(baseHandler, service))
	RegisterMovementRoutes(rg.Group("/stock-out"), handlers.NewStockOutHandler(baseHandler, service))
	RegisterMovementRoutes(rg.Group("/transfers"), handlers.NewTransferHandler(baseHandler, service))
}

// activityRecorder keeps the nil check in one place: a typed nil pointer
// inside a non-nil interface would defeat the service's nil guard.
func activityRecorder(log *postgres.ActivityLog) ledger.ActivityRecorder {
	if log == nil {
		return nil
	}
	return log
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig, baseHandler *handlers.BaseHandler) {
	repo := report_repo.NewReportRepo(cfg.TxManager)
	service := reports.NewService(repo)
	handler := handlers.NewReportsHandler(baseHandler, service)

	reportsGroup := rg.Group("/reports")
	{
		reportsGroup.GET("/summary", handler.GetSummary)
		reportsGroup.GET("/low-stock", handler.GetLowStock)
		reportsGroup.GET("/inventory", handler.GetInventory)
		reportsGroup.GET("/movements", handler.GetMovementHistory)
	}
}

// registerActivityRoutes registers the activity trail endpoint (admin only).
func registerActivityRoutes(rg *gin.RouterGroup, cfg RouterConfig, baseHandler *handlers.BaseHandler, adminOnly gin.HandlerFunc) {
	if cfg.ActivityLog == nil {
		return
	}
	handler := handlers.NewActivityHandler(baseHandler, cfg.ActivityLog)
	rg.GET("/activity/:entityType/:id", adminOnly, handler.GetHistory)
}
