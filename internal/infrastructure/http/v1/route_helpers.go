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
	SetDeletionMark(c *gin.Context)
}

// DocumentRouteHandler defines the interface for document handlers.
// All postable document handlers must implement these methods.
type DocumentRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	Post(c *gin.Context)
	Unpost(c *gin.Context)
}

// RegisterCatalogRoutes registers standard CRUD routes for a catalog.
//
// Usage:
//
//	repo := catalog_repo.NewProductRepo(cfg.TxManager)
//	service := product.NewService(repo, cfg.TxManager, stockService)
//	handler := handlers.NewProductHandler(baseHandler, service)
//	RegisterCatalogRoutes(catalogs.Group("/products"), handler)
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
	group.POST("/:id/deletion-mark", handler.SetDeletionMark)
}

// RegisterDocumentRoutes registers standard CRUD + posting routes for a document.
//
// Usage:
//
//	repo := document_repo.NewPurchaseOrderRepo(cfg.TxManager)
//	service := purchase_order.NewService(repo, postingEngine, cfg.Numerator, cfg.TxManager)
//	handler := handlers.NewPurchaseOrderHandler(baseHandler, service)
//	RegisterDocumentRoutes(documents.Group("/purchase-orders"), handler)
func RegisterDocumentRoutes(group *gin.RouterGroup, handler DocumentRouteHandler) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
	group.POST("/:id/post", handler.Post)
	group.POST("/:id/unpost", handler.Unpost)
}
