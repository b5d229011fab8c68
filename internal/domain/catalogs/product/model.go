// Package product provides the Product catalog.
// Products are the medical supplies tracked through the stock ledger.
package product

import (
	"context"

	"medtrack/internal/core/entity"
)

// Product represents a medical supply item.
type Product struct {
	entity.Catalog

	// Description is an optional detailed description
	Description *string `db:"description" json:"description,omitempty"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(reference, name string) *Product {
	return &Product{
		Catalog: entity.NewCatalog(reference, name),
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	return p.Catalog.Validate(ctx)
}
