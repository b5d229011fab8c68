package v1

import (
	"github.com/gin-gonic/gin"

	"medtrack/internal/domain/audit"
	"medtrack/internal/domain/catalogs/centre"
	"medtrack/internal/domain/catalogs/location"
	"medtrack/internal/domain/catalogs/product"
	"medtrack/internal/domain/catalogs/supplier"
	"medtrack/internal/domain/documents/coupon"
	"medtrack/internal/domain/documents/purchase"
	"medtrack/internal/domain/documents/purchase_order"
	"medtrack/internal/domain/documents/transaction"
	"medtrack/internal/domain/posting"
	"medtrack/internal/domain/reports"
	"medtrack/internal/domain/stockledger"
	"medtrack/internal/infrastructure/http/v1/handlers"
	"medtrack/internal/infrastructure/http/v1/middleware"
	"medtrack/internal/infrastructure/reporting"
	"medtrack/internal/infrastructure/storage/postgres"
	"medtrack/internal/infrastructure/storage/postgres/catalog_repo"
	"medtrack/internal/infrastructure/storage/postgres/document_repo"
	"medtrack/internal/infrastructure/storage/postgres/ledger_repo"
	"medtrack/pkg/logger"
	"medtrack/pkg/numerator"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (health checks, stats)
	Pool *postgres.Pool

	// TxManager runs repository calls in transactions
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// Numerator for document number generation
	Numerator numerator.Generator

	// Activity persists and serves the activity log. May be nil:
	// endpoints depending on it are then not registered and writes
	// are skipped.
	Activity *postgres.ActivityLogStore
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

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		deps := buildDomain(cfg)

		registerCatalogRoutes(v1, deps)
		registerDocumentRoutes(v1, deps)
		registerStockRoutes(v1, deps)
		registerActivityRoutes(v1, cfg)
	}

	return router
}

// domainDeps is the wired domain layer shared by route groups.
type domainDeps struct {
	stockService *stockledger.Service
	reports      *reports.Service

	productService  *product.Service
	locationService *location.Service
	centreService   *centre.Service
	supplierService *supplier.Service

	purchaseOrderService *purchase_order.Service
	purchaseService      *purchase.Service
	transactionService   *transaction.Service
	couponService        *coupon.Service

	// activity is the recorder interface, nil when no store is configured
	activity audit.Recorder
}

// recorderOrNil converts the store pointer to the Recorder interface.
// A plain conversion of a nil pointer would produce a non-nil interface
// that audit.Log cannot recognize as absent.
func recorderOrNil(store *postgres.ActivityLogStore) audit.Recorder {
	if store == nil {
		return nil
	}
	return store
}

// buildDomain wires repositories, the stock ledger and document services.
func buildDomain(cfg RouterConfig) domainDeps {
	recorder := recorderOrNil(cfg.Activity)

	holderRepo := ledger_repo.NewStockHolderRepo(cfg.TxManager)
	stockService := stockledger.NewService(holderRepo, cfg.TxManager, recorder)
	postingEngine := posting.NewEngine(stockService, cfg.TxManager, recorder)

	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	locationRepo := catalog_repo.NewLocationRepo(cfg.TxManager)
	centreRepo := catalog_repo.NewCentreRepo(cfg.TxManager)
	supplierRepo := catalog_repo.NewSupplierRepo(cfg.TxManager)

	purchaseOrderRepo := document_repo.NewPurchaseOrderRepo(cfg.TxManager)
	purchaseRepo := document_repo.NewPurchaseRepo(cfg.TxManager)
	transactionRepo := document_repo.NewTransactionRepo(cfg.TxManager)
	couponRepo := document_repo.NewCouponRepo(cfg.TxManager)

	deps := domainDeps{
		stockService: stockService,
		activity:     recorder,

		productService:  product.NewService(productRepo, cfg.TxManager, stockService),
		locationService: location.NewService(locationRepo, cfg.TxManager),
		centreService:   centre.NewService(centreRepo, cfg.TxManager),
		supplierService: supplier.NewService(supplierRepo, cfg.TxManager),

		purchaseOrderService: purchase_order.NewService(purchaseOrderRepo, postingEngine, cfg.Numerator, cfg.TxManager),
		purchaseService:      purchase.NewService(purchaseRepo, postingEngine, cfg.Numerator, cfg.TxManager),
		transactionService:   transaction.NewService(transactionRepo, postingEngine, stockService, cfg.Numerator, cfg.TxManager),
	}

	deps.couponService = coupon.NewService(couponRepo, cfg.Numerator, cfg.TxManager, recorder)
	deps.reports = reports.NewService(stockService, transactionRepo, productRepo, locationRepo)

	return deps
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, deps domainDeps) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	RegisterCatalogRoutes(catalogs.Group("/products"),
		handlers.NewProductHandler(baseHandler, deps.productService))
	RegisterCatalogRoutes(catalogs.Group("/locations"),
		handlers.NewLocationHandler(baseHandler, deps.locationService))
	RegisterCatalogRoutes(catalogs.Group("/medical-centres"),
		handlers.NewCentreHandler(baseHandler, deps.centreService))
	RegisterCatalogRoutes(catalogs.Group("/suppliers"),
		handlers.NewSupplierHandler(baseHandler, deps.supplierService))
}

// registerDocumentRoutes registers document endpoints.
func registerDocumentRoutes(rg *gin.RouterGroup, deps domainDeps) {
	docsGroup := rg.Group("/document")
	baseHandler := handlers.NewBaseHandler()

	RegisterDocumentRoutes(docsGroup.Group("/purchase-orders"),
		handlers.NewPurchaseOrderHandler(baseHandler, deps.purchaseOrderService))

	RegisterDocumentRoutes(docsGroup.Group("/purchases"),
		handlers.NewPurchaseHandler(baseHandler, deps.purchaseService))

	// --- TRANSACTIONS ---
	{
		renderer := reporting.NewDeliveryNoteRenderer()
		handler := handlers.NewTransactionHandler(baseHandler,
			deps.transactionService, deps.reports, renderer, deps.activity)

		group := docsGroup.Group("/transactions")
		RegisterDocumentRoutes(group, handler)
		group.GET("/:id/delivery-note", handler.DeliveryNote)
	}

	// --- PATIENT COUPONS ---
	// Coupons are not postable: verify/unverify instead of post/unpost.
	{
		handler := handlers.NewCouponHandler(baseHandler, deps.couponService)

		group := docsGroup.Group("/patient-coupons")
		group.GET("", handler.List)
		group.POST("", handler.Create)
		group.POST("/bulk", handler.CreateBulk)
		group.GET("/:id", handler.Get)
		group.PUT("/:id", handler.Update)
		group.DELETE("/:id", handler.Delete)
		group.POST("/:id/verify", handler.Verify)
		group.POST("/:id/unverify", handler.Unverify)
	}
}

// registerStockRoutes registers stock ledger endpoints.
func registerStockRoutes(rg *gin.RouterGroup, deps domainDeps) {
	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewStockHandler(baseHandler, deps.stockService, deps.reports)
	handler.RegisterRoutes(rg.Group("/stock"))
}

// registerActivityRoutes registers activity log endpoints.
func registerActivityRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.Activity == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewActivityHandler(baseHandler, cfg.Activity)
	handler.RegisterRoutes(rg.Group("/activity"))
}
