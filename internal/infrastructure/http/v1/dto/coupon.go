package dto

import (
	"time"

	"medtrack/internal/core/apperror"
	"medtrack/internal/core/id"
	"medtrack/internal/domain/documents/coupon"
)

// --- Request DTOs ---

// CreateCouponRequest is the request body for creating a patient coupon.
type CreateCouponRequest struct {
	Date            *time.Time `json:"date"`
	PatientName     *string    `json:"patientName"`
	CPR             *string    `json:"cpr"`
	MedicalCentreID string     `json:"medicalCentreId" binding:"required"`
	LocationID      string     `json:"locationId" binding:"required"`
	ProductID       *string    `json:"productId"`
	Quantity        int64      `json:"quantity" binding:"required,min=1"`
	Comment         string     `json:"comment"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCouponRequest) ToEntity() (*coupon.Coupon, error) {
	centreID, err := id.Parse(r.MedicalCentreID)
	if err != nil {
		return nil, apperror.NewValidation("invalid medicalCentreId format")
	}
	locationID, err := id.Parse(r.LocationID)
	if err != nil {
		return nil, apperror.NewValidation("invalid locationId format")
	}
	productID, err := parseID(r.ProductID)
	if err != nil {
		return nil, apperror.NewValidation("invalid productId format")
	}

	doc := coupon.NewCoupon(centreID, locationID, r.Quantity)
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.PatientName = r.PatientName
	if r.CPR != nil {
		doc.SetCPR(*r.CPR)
	}
	doc.ProductID = productID
	doc.Comment = r.Comment
	return doc, nil
}

// UpdateCouponRequest is the request body for updating a patient coupon.
type UpdateCouponRequest struct {
	Date            *time.Time `json:"date"`
	PatientName     *string    `json:"patientName"`
	CPR             *string    `json:"cpr"`
	MedicalCentreID *string    `json:"medicalCentreId"`
	LocationID      *string    `json:"locationId"`
	ProductID       *string    `json:"productId"`
	Quantity        *int64     `json:"quantity"`
	Comment         *string    `json:"comment"`
	Version         int        `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateCouponRequest) ApplyTo(doc *coupon.Coupon) error {
	if r.MedicalCentreID != nil {
		centreID, err := id.Parse(*r.MedicalCentreID)
		if err != nil {
			return apperror.NewValidation("invalid medicalCentreId format")
		}
		doc.MedicalCentreID = centreID
	}
	if r.LocationID != nil {
		locationID, err := id.Parse(*r.LocationID)
		if err != nil {
			return apperror.NewValidation("invalid locationId format")
		}
		doc.LocationID = locationID
	}
	if r.ProductID != nil {
		productID, err := parseID(r.ProductID)
		if err != nil {
			return apperror.NewValidation("invalid productId format")
		}
		doc.ProductID = productID
	}
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.PatientName != nil {
		doc.PatientName = r.PatientName
	}
	if r.CPR != nil {
		doc.SetCPR(*r.CPR)
	}
	if r.Quantity != nil {
		doc.Quantity = *r.Quantity
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}
	doc.Version = r.Version
	return nil
}

// BulkCreateCouponsRequest creates a batch of coupons in one call.
type BulkCreateCouponsRequest struct {
	Coupons []CreateCouponRequest `json:"coupons" binding:"required,min=1,max=500,dive"`
}

// VerifyCouponRequest confirms delivery of a coupon to the patient.
type VerifyCouponRequest struct {
	VerifiedBy string `json:"verifiedBy"`
}

// --- Response DTOs ---

// CouponResponse is the response body for a patient coupon.
type CouponResponse struct {
	DocumentResponse
	PatientName     *string    `json:"patientName,omitempty"`
	CPR             *string    `json:"cpr,omitempty"`
	MedicalCentreID string     `json:"medicalCentreId"`
	LocationID      string     `json:"locationId"`
	ProductID       *string    `json:"productId,omitempty"`
	Quantity        int64      `json:"quantity"`
	Verified        bool       `json:"verified"`
	VerifiedAt      *time.Time `json:"verifiedAt,omitempty"`
	VerifiedBy      *string    `json:"verifiedBy,omitempty"`
}

// FromCoupon creates response DTO from domain entity.
func FromCoupon(doc *coupon.Coupon) *CouponResponse {
	resp := &CouponResponse{
		DocumentResponse: FromDocument(doc.Document),
		PatientName:      doc.PatientName,
		CPR:              doc.CPR,
		MedicalCentreID:  doc.MedicalCentreID.String(),
		LocationID:       doc.LocationID.String(),
		Quantity:         doc.Quantity,
		Verified:         doc.Verified,
		VerifiedAt:       doc.VerifiedAt,
		VerifiedBy:       doc.VerifiedBy,
	}
	if doc.ProductID != nil {
		s := doc.ProductID.String()
		resp.ProductID = &s
	}
	return resp
}
