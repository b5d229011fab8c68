package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"medtrack/internal/core/apperror"
	"medtrack/internal/core/id"
	"medtrack/internal/domain"
	"medtrack/internal/domain/documents/coupon"
	"medtrack/internal/infrastructure/http/v1/dto"
)

// CouponHandler handles HTTP requests for patient coupons.
// Coupons are not postable, so the handler does not embed the generic
// document handler: no post/unpost, verify/unverify instead.
type CouponHandler struct {
	*BaseHandler
	service *coupon.Service
}

// NewCouponHandler creates a new coupon handler.
func NewCouponHandler(base *BaseHandler, service *coupon.Service) *CouponHandler {
	return &CouponHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /document/patient-coupons - list with filtering.
func (h *CouponHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := coupon.ListFilter{
		ListFilter: domain.DefaultListFilter(),
	}
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "date DESC")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	if centreID := c.Query("medicalCentreId"); centreID != "" {
		if parsed, err := id.Parse(centreID); err == nil {
			filter.MedicalCentreID = &parsed
		}
	}

	if locationID := c.Query("locationId"); locationID != "" {
		if parsed, err := id.Parse(locationID); err == nil {
			filter.LocationID = &parsed
		}
	}

	if cpr := c.Query("cpr"); cpr != "" {
		normalized := coupon.NormalizeCPR(cpr)
		filter.CPR = &normalized
	}

	if verified := c.Query("verified"); verified != "" {
		val := verified == "true"
		filter.Verified = &val
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

	items := make([]*dto.CouponResponse, len(result.Items))
	for i, doc := range result.Items {
		items[i] = dto.FromCoupon(doc)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /document/patient-coupons/:id
func (h *CouponHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCoupon(doc))
}

// Create handles POST /document/patient-coupons
func (h *CouponHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateCouponRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromCoupon(doc))
}

// CreateBulk handles POST /document/patient-coupons/bulk
// All coupons are created in one transaction; one invalid entry fails
// the whole batch.
func (h *CouponHandler) CreateBulk(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.BulkCreateCouponsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	docs := make([]*coupon.Coupon, len(req.Coupons))
	for i := range req.Coupons {
		doc, err := req.Coupons[i].ToEntity()
		if err != nil {
			h.Error(c, err)
			return
		}
		docs[i] = doc
	}

	if err := h.service.CreateBulk(ctx, docs); err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.CouponResponse, len(docs))
	for i, doc := range docs {
		items[i] = dto.FromCoupon(doc)
	}

	c.JSON(http.StatusCreated, dto.ListResponse{
		Items:      items,
		TotalCount: int64(len(items)),
		Limit:      len(items),
		Offset:     0,
	})
}

// Update handles PUT /document/patient-coupons/:id
func (h *CouponHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateCouponRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := req.ApplyTo(doc); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Update(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCoupon(doc))
}

// Delete handles DELETE /document/patient-coupons/:id
func (h *CouponHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, docID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Verify handles POST /document/patient-coupons/:id/verify
func (h *CouponHandler) Verify(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	// Body is optional; verifiedBy defaults to empty.
	var req dto.VerifyCouponRequest
	if c.Request.ContentLength > 0 {
		if !h.BindJSON(c, &req) {
			return
		}
	}

	doc, err := h.service.Verify(ctx, docID, req.VerifiedBy)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCoupon(doc))
}

// Unverify handles POST /document/patient-coupons/:id/unverify
func (h *CouponHandler) Unverify(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.Unverify(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCoupon(doc))
}
