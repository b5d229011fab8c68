package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medtrack/internal/core/apperror"
	"medtrack/internal/core/id"
	"medtrack/internal/domain/audit"
)

// ActivityHandler exposes the activity log read API.
type ActivityHandler struct {
	*BaseHandler
	reader audit.Reader
}

// NewActivityHandler creates a new activity log handler.
func NewActivityHandler(base *BaseHandler, reader audit.Reader) *ActivityHandler {
	return &ActivityHandler{
		BaseHandler: base,
		reader:      reader,
	}
}

// History handles GET /activity/:table/:recordId
// Entries for one record, newest first.
func (h *ActivityHandler) History(c *gin.Context) {
	ctx := c.Request.Context()

	tableName := c.Param("table")
	if tableName == "" {
		h.Error(c, apperror.NewValidation("table is required"))
		return
	}

	recordID, err := id.Parse(c.Param("recordId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid recordId format"))
		return
	}

	limit := h.ParseIntQuery(c, "limit", 100)

	entries, err := h.reader.History(ctx, tableName, recordID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": entries})
}

// Recent handles GET /activity/recent
// Latest entries across all tables.
func (h *ActivityHandler) Recent(c *gin.Context) {
	ctx := c.Request.Context()

	limit := h.ParseIntQuery(c, "limit", 50)

	entries, err := h.reader.Recent(ctx, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": entries})
}

// RegisterRoutes registers activity log routes.
func (h *ActivityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/recent", h.Recent)
	rg.GET("/:table/:recordId", h.History)
}
