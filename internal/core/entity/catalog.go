package entity

import (
	"context"
	"strings"

	"medtrack/internal/core/apperror"
)

// Catalog is the base type for reference data.
// Examples: Products, DistributionLocations, MedicalCentres, Suppliers.
type Catalog struct {
	BaseCatalog

	// Reference is a human-readable identifier, unique per catalog.
	// Stored upper-cased (PRD-001, LOC-MAIN).
	Reference string `db:"reference" json:"reference"`

	// Name is the display name
	Name string `db:"name" json:"name"`
}

// NewCatalog creates a new Catalog with generated ID.
func NewCatalog(reference, name string) Catalog {
	return Catalog{
		BaseCatalog: NewBaseCatalog(),
		Reference:   NormalizeReference(reference),
		Name:        name,
	}
}

// NormalizeReference trims and upper-cases a reference code.
func NormalizeReference(reference string) string {
	return strings.ToUpper(strings.TrimSpace(reference))
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	if strings.TrimSpace(c.Reference) == "" {
		return apperror.NewValidation("reference is required").
			WithDetail("field", "reference")
	}

	return nil
}

// SetReference normalizes and sets the reference code.
func (c *Catalog) SetReference(reference string) {
	c.Reference = NormalizeReference(reference)
}
