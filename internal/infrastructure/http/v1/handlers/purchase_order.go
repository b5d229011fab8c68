package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"medtrack/internal/core/id"
	"medtrack/internal/domain"
	"medtrack/internal/domain/documents/purchase_order"
	"medtrack/internal/infrastructure/http/v1/dto"
)

// PurchaseOrderHandler handles HTTP requests for purchase order documents.
type PurchaseOrderHandler struct {
	*BaseDocumentHandler[*purchase_order.PurchaseOrder, dto.CreatePurchaseOrderRequest, dto.UpdatePurchaseOrderRequest]
	service *purchase_order.Service
}

// NewPurchaseOrderHandler creates a new purchase order handler.
func NewPurchaseOrderHandler(base *BaseHandler, service *purchase_order.Service) *PurchaseOrderHandler {
	cfg := BaseDocumentHandlerConfig[*purchase_order.PurchaseOrder, dto.CreatePurchaseOrderRequest, dto.UpdatePurchaseOrderRequest]{
		Service:    service,
		EntityName: "purchase-order",
		MapCreateDTO: func(req dto.CreatePurchaseOrderRequest) (*purchase_order.PurchaseOrder, error) {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdatePurchaseOrderRequest, existing *purchase_order.PurchaseOrder) error {
			return req.ApplyTo(existing)
		},
		MapToDTO: func(entity *purchase_order.PurchaseOrder) any {
			return dto.FromPurchaseOrder(entity)
		},
	}

	return &PurchaseOrderHandler{
		BaseDocumentHandler: NewBaseDocumentHandler(base, cfg),
		service:             service,
	}
}

// List handles GET /document/purchase-orders - list with filtering.
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := purchase_order.ListFilter{
		ListFilter: domain.DefaultListFilter(),
	}
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "date DESC")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	if productID := c.Query("productId"); productID != "" {
		if parsed, err := id.Parse(productID); err == nil {
			filter.ProductID = &parsed
		}
	}

	if posted := c.Query("posted"); posted != "" {
		val := posted == "true"
		filter.Posted = &val
	}

	if dateFrom := c.Query("dateFrom"); dateFrom != "" {
		if parsed, err := time.Parse(time.RFC3339, dateFrom); err == nil {
			filter.DateFrom = &parsed
		}
	}

	if dateTo := c.Query("dateTo"); dateTo != "" {
		if parsed, err := time.Parse(time.RFC3339, dateTo); err == nil {
			filter.DateTo = &parsed
		}
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.PurchaseOrderResponse, len(result.Items))
	for i, doc := range result.Items {
		items[i] = dto.FromPurchaseOrder(doc)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
