// Package coupon provides the PatientCoupon document.
// Coupons are issued by medical centres for supply pickup at a
// distribution location. Verification confirms delivery to the patient;
// it has no stock effect (stock moves through transactions).
package coupon

import (
	"context"
	"strings"
	"time"

	"medtrack/internal/core/apperror"
	"medtrack/internal/core/entity"
	"medtrack/internal/core/id"
)

// Coupon represents a patient supply coupon.
type Coupon struct {
	entity.Document

	// PatientName is optional; coupons may be issued anonymously
	PatientName *string `db:"patient_name" json:"patientName,omitempty"`

	// CPR is the patient's civil registration number, normalized on set
	CPR *string `db:"cpr" json:"cpr,omitempty"`

	// MedicalCentreID is the issuing centre
	MedicalCentreID id.ID `db:"medical_centre_id" json:"medicalCentreId"`

	// LocationID is the pickup distribution location
	LocationID id.ID `db:"location_id" json:"locationId"`

	// ProductID optionally pins the coupon to a specific product
	ProductID *id.ID `db:"product_id" json:"productId,omitempty"`

	// Quantity is the coupon quantity in pieces
	Quantity int64 `db:"quantity" json:"quantity"`

	// Verified marks the coupon as delivered to the patient
	Verified   bool       `db:"verified" json:"verified"`
	VerifiedAt *time.Time `db:"verified_at" json:"verifiedAt,omitempty"`

	// VerifiedBy records who confirmed the delivery
	VerifiedBy *string `db:"verified_by" json:"verifiedBy,omitempty"`
}

// NewCoupon creates a new patient coupon.
func NewCoupon(centreID, locationID id.ID, quantity int64) *Coupon {
	return &Coupon{
		Document:        entity.NewDocument(),
		MedicalCentreID: centreID,
		LocationID:      locationID,
		Quantity:        quantity,
	}
}

// NormalizeCPR strips spaces and dashes from a CPR number.
func NormalizeCPR(cpr string) string {
	cpr = strings.TrimSpace(cpr)
	cpr = strings.ReplaceAll(cpr, " ", "")
	cpr = strings.ReplaceAll(cpr, "-", "")
	return cpr
}

// SetCPR normalizes and sets the patient CPR. Empty input clears it.
func (c *Coupon) SetCPR(cpr string) {
	normalized := NormalizeCPR(cpr)
	if normalized == "" {
		c.CPR = nil
		return
	}
	c.CPR = &normalized
}

// Validate implements entity.Validatable.
func (c *Coupon) Validate(ctx context.Context) error {
	if err := c.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(c.MedicalCentreID) {
		return apperror.NewValidation("medical centre is required").
			WithDetail("field", "medicalCentreId")
	}

	if id.IsNil(c.LocationID) {
		return apperror.NewValidation("location is required").
			WithDetail("field", "locationId")
	}

	if c.Quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}

	return nil
}

// MarkVerified sets the delivery confirmation.
func (c *Coupon) MarkVerified(by string) error {
	if c.Verified {
		return apperror.NewConflict("coupon is already verified").
			WithDetail("coupon_id", c.ID.String())
	}

	now := time.Now().UTC()
	c.Verified = true
	c.VerifiedAt = &now
	if by != "" {
		c.VerifiedBy = &by
	}
	c.Touch()
	return nil
}

// MarkUnverified clears the delivery confirmation.
func (c *Coupon) MarkUnverified() error {
	if !c.Verified {
		return apperror.NewConflict("coupon is not verified").
			WithDetail("coupon_id", c.ID.String())
	}

	c.Verified = false
	c.VerifiedAt = nil
	c.VerifiedBy = nil
	c.Touch()
	return nil
}
