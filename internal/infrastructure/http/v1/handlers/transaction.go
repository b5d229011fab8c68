package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"medtrack/internal/core/apperror"
	"medtrack/internal/core/id"
	"medtrack/internal/domain"
	"medtrack/internal/domain/audit"
	"medtrack/internal/domain/documents/transaction"
	"medtrack/internal/domain/reports"
	"medtrack/internal/infrastructure/http/v1/dto"
	"medtrack/internal/infrastructure/reporting"
)

// TransactionHandler handles HTTP requests for distribution transactions.
type TransactionHandler struct {
	*BaseDocumentHandler[*transaction.Transaction, dto.CreateTransactionRequest, dto.UpdateTransactionRequest]
	service  *transaction.Service
	reports  *reports.Service
	renderer *reporting.DeliveryNoteRenderer
	activity audit.Recorder
}

// NewTransactionHandler creates a new transaction handler.
// activity may be nil (delivery note exports are then not logged).
func NewTransactionHandler(
	base *BaseHandler,
	service *transaction.Service,
	reportsService *reports.Service,
	renderer *reporting.DeliveryNoteRenderer,
	activity audit.Recorder,
) *TransactionHandler {
	cfg := BaseDocumentHandlerConfig[*transaction.Transaction, dto.CreateTransactionRequest, dto.UpdateTransactionRequest]{
		Service:    service,
		EntityName: "transaction",
		MapCreateDTO: func(req dto.CreateTransactionRequest) (*transaction.Transaction, error) {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateTransactionRequest, existing *transaction.Transaction) error {
			return req.ApplyTo(existing)
		},
		MapToDTO: func(entity *transaction.Transaction) any {
			return dto.FromTransaction(entity)
		},
	}

	return &TransactionHandler{
		BaseDocumentHandler: NewBaseDocumentHandler(base, cfg),
		service:             service,
		reports:             reportsService,
		renderer:            renderer,
		activity:            activity,
	}
}

// List handles GET /document/transactions - list with filtering.
func (h *TransactionHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := transaction.ListFilter{
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

	if locationID := c.Query("locationId"); locationID != "" {
		if parsed, err := id.Parse(locationID); err == nil {
			filter.LocationID = &parsed
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

	items := make([]*dto.TransactionResponse, len(result.Items))
	for i, doc := range result.Items {
		items[i] = dto.FromTransaction(doc)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// DeliveryNote handles GET /document/transactions/:id/delivery-note.
// Streams the rendered .xlsx workbook for a posted transaction.
func (h *TransactionHandler) DeliveryNote(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	note, err := h.reports.DeliveryNote(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	// Render to a buffer first so errors still produce a JSON response
	// instead of a truncated download.
	var buf bytes.Buffer
	if err := h.renderer.Render(note, &buf); err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}

	audit.Log(ctx, h.activity, audit.Entry{
		Action:      audit.ActionExport,
		TableName:   "transactions",
		RecordID:    docID,
		Description: fmt.Sprintf("Delivery note %s exported", note.Number),
	})

	filename := fmt.Sprintf("delivery_note_%s.xlsx", note.Number)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
