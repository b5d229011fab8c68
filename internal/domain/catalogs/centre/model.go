// Package centre provides the MedicalCentre catalog.
// Medical centres issue patient coupons for supply pickup.
package centre

import (
	"context"

	"medtrack/internal/core/entity"
)

// Centre represents a medical centre.
type Centre struct {
	entity.Catalog

	// Address is the physical address
	Address *string `db:"address" json:"address,omitempty"`

	// ContactPerson is the responsible person at the centre
	ContactPerson *string `db:"contact_person" json:"contactPerson,omitempty"`

	// Phone is the contact phone number
	Phone *string `db:"phone" json:"phone,omitempty"`
}

// NewCentre creates a new Centre with required fields.
func NewCentre(reference, name string) *Centre {
	return &Centre{
		Catalog: entity.NewCatalog(reference, name),
	}
}

// Validate implements entity.Validatable interface.
func (c *Centre) Validate(ctx context.Context) error {
	return c.Catalog.Validate(ctx)
}
