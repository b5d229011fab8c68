package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"medtrack/internal/core/apperror"
	"medtrack/internal/core/id"
	"medtrack/internal/domain/reports"
	"medtrack/internal/domain/stockledger"
)

// StockHandler handles HTTP requests for the stock ledger.
type StockHandler struct {
	*BaseHandler
	stock   *stockledger.Service
	reports *reports.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, stock *stockledger.Service, reportsService *reports.Service) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		stock:       stock,
		reports:     reportsService,
	}
}

// GetSummary handles GET /stock/summary
func (h *StockHandler) GetSummary(c *gin.Context) {
	ctx := c.Request.Context()

	summary, err := h.stock.GetStockSummary(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": summary})
}

// GetLowStock handles GET /stock/low-stock?threshold=20
func (h *StockHandler) GetLowStock(c *gin.Context) {
	ctx := c.Request.Context()

	threshold := 20.0
	if t := c.Query("threshold"); t != "" {
		parsed, err := strconv.ParseFloat(t, 64)
		if err != nil || parsed <= 0 || parsed > 100 {
			h.Error(c, apperror.NewValidation("threshold must be a number between 0 and 100"))
			return
		}
		threshold = parsed
	}

	low, err := h.stock.GetLowStock(ctx, threshold)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"threshold": threshold,
		"items":     low,
	})
}

// GetReport handles GET /stock/report?threshold=20
// Full summary with the derived low-stock section.
func (h *StockHandler) GetReport(c *gin.Context) {
	ctx := c.Request.Context()

	threshold := 0.0
	if t := c.Query("threshold"); t != "" {
		parsed, err := strconv.ParseFloat(t, 64)
		if err != nil || parsed <= 0 || parsed > 100 {
			h.Error(c, apperror.NewValidation("threshold must be a number between 0 and 100"))
			return
		}
		threshold = parsed
	}

	report, err := h.reports.StockReport(ctx, threshold)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetProductAvailability handles GET /stock/availability/:productId
// Returns remaining stock per holder kind.
func (h *StockHandler) GetProductAvailability(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	totals, err := h.stock.GetProductAvailability(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"productId": productID.String(),
		"remaining": totals,
	})
}

// CheckAvailability handles GET /stock/availability/:productId/check?quantity=N&kind=purchase_order
// Non-mutating dry run of a deduction.
func (h *StockHandler) CheckAvailability(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	quantity, err := strconv.ParseInt(c.Query("quantity"), 10, 64)
	if err != nil || quantity <= 0 {
		h.Error(c, apperror.NewValidation("quantity must be a positive integer"))
		return
	}

	kind := stockledger.HolderKind(c.DefaultQuery("kind", string(stockledger.KindPurchaseOrder)))
	if !stockledger.IsValidKind(kind) {
		h.Error(c, apperror.NewValidation("invalid holder kind").WithDetail("kind", string(kind)))
		return
	}

	check, err := h.stock.ValidateAvailability(ctx, kind, productID, quantity)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, check)
}

// GetHolders handles GET /stock/holders/:productId?kind=purchase_order
// Returns the product's holders in FIFO order.
func (h *StockHandler) GetHolders(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	kind := stockledger.HolderKind(c.DefaultQuery("kind", string(stockledger.KindPurchaseOrder)))

	holders, err := h.stock.ListHolders(ctx, productID, kind)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"productId": productID.String(),
		"kind":      kind,
		"items":     holders,
	})
}

// RegisterRoutes registers stock routes.
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/summary", h.GetSummary)
	rg.GET("/low-stock", h.GetLowStock)
	rg.GET("/report", h.GetReport)
	rg.GET("/availability/:productId", h.GetProductAvailability)
	rg.GET("/availability/:productId/check", h.CheckAvailability)
	rg.GET("/holders/:productId", h.GetHolders)
}
