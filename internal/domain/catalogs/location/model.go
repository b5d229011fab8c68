// Package location provides the DistributionLocation catalog.
// Locations are the clinics and centres that receive distributed stock.
package location

import (
	"context"

	"medtrack/internal/core/entity"
)

// Location represents a distribution location.
type Location struct {
	entity.Catalog

	// Address is the physical address
	Address *string `db:"address" json:"address,omitempty"`

	// ContactPerson is the responsible person at the location
	ContactPerson *string `db:"contact_person" json:"contactPerson,omitempty"`

	// Phone is the contact phone number
	Phone *string `db:"phone" json:"phone,omitempty"`
}

// NewLocation creates a new Location with required fields.
func NewLocation(reference, name string) *Location {
	return &Location{
		Catalog: entity.NewCatalog(reference, name),
	}
}

// Validate implements entity.Validatable interface.
func (l *Location) Validate(ctx context.Context) error {
	return l.Catalog.Validate(ctx)
}
