// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
)

// CatalogRouteHandler defines the interface for catalog handlers.
// All catalog handlers must implement these methods.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// MovementRouteHandler defines the interface for movement handlers.
type MovementRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// RegisterCatalogRoutes registers standard CRUD routes for a catalog.
// Reads are open to any authenticated user; mutations pass through
// writeGuard (role check).
//
// Usage:
//
//	repo := catalog_repo.NewWarehouseRepo(txm)
//	service := warehouse.NewService(repo, txm)
//	handler := handlers.NewWarehouseHandler(baseHandler, service)
//	RegisterCatalogRoutes(catalogs.Group("/warehouses"), handler, adminOnly)
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler, writeGuard gin.HandlerFunc) {
	group.GET("", handler.List)
	group.GET("/:id", handler.Get)
	group.POST("", writeGuard, handler.Create)
	group.PUT("/:id", writeGuard, handler.Update)
	group.DELETE("/:id", writeGuard, handler.Delete)
}

// RegisterMovementRoutes registers standard CRUD routes for a movement
// journal. Any authenticated user may record movements.
func RegisterMovementRoutes(group *gin.RouterGroup, handler MovementRouteHandler) {
	group.GET("", handler.List)
	group.GET("/:id", handler.Get)
	group.POST("", handler.Create)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
}
