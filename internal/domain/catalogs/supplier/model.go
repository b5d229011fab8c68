// Package supplier provides the Supplier catalog.
// Suppliers are referenced by purchase documents.
package supplier

import (
	"context"

	"medtrack/internal/core/entity"
)

// Supplier represents a supply vendor.
type Supplier struct {
	entity.Catalog

	// ContactPerson is the vendor's contact
	ContactPerson *string `db:"contact_person" json:"contactPerson,omitempty"`

	// Phone is the contact phone number
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Email is the contact email
	Email *string `db:"email" json:"email,omitempty"`

	// Address is the vendor's address
	Address *string `db:"address" json:"address,omitempty"`
}

// NewSupplier creates a new Supplier with required fields.
func NewSupplier(reference, name string) *Supplier {
	return &Supplier{
		Catalog: entity.NewCatalog(reference, name),
	}
}

// Validate implements entity.Validatable interface.
func (s *Supplier) Validate(ctx context.Context) error {
	return s.Catalog.Validate(ctx)
}
