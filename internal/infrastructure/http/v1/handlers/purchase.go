package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"medtrack/internal/core/id"
	"medtrack/internal/domain"
	"medtrack/internal/domain/documents/purchase"
	"medtrack/internal/infrastructure/http/v1/dto"
)

// PurchaseHandler handles HTTP requests for purchase documents.
type PurchaseHandler struct {
	*BaseDocumentHandler[*purchase.Purchase, dto.CreatePurchaseRequest, dto.UpdatePurchaseRequest]
	service *purchase.Service
}

// NewPurchaseHandler creates a new purchase handler.
func NewPurchaseHandler(base *BaseHandler, service *purchase.Service) *PurchaseHandler {
	cfg := BaseDocumentHandlerConfig[*purchase.Purchase, dto.CreatePurchaseRequest, dto.UpdatePurchaseRequest]{
		Service:    service,
		EntityName: "purchase",
		MapCreateDTO: func(req dto.CreatePurchaseRequest) (*purchase.Purchase, error) {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdatePurchaseRequest, existing *purchase.Purchase) error {
			return req.ApplyTo(existing)
		},
		MapToDTO: func(entity *purchase.Purchase) any {
			return dto.FromPurchase(entity)
		},
	}

	return &PurchaseHandler{
		BaseDocumentHandler: NewBaseDocumentHandler(base, cfg),
		service:             service,
	}
}

// List handles GET /document/purchases - list with filtering.
func (h *PurchaseHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := purchase.ListFilter{
		ListFilter: domain.DefaultListFilter(),
	}
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "date DESC")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	if supplierID := c.Query("supplierId"); supplierID != "" {
		if parsed, err := id.Parse(supplierID); err == nil {
			filter.SupplierID = &parsed
		}
	}

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

	items := make([]*dto.PurchaseResponse, len(result.Items))
	for i, doc := range result.Items {
		items[i] = dto.FromPurchase(doc)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
