package dto

import (
	"medtrack/internal/core/entity"
	"medtrack/internal/domain/catalogs/product"
)

// --- Request DTOs ---

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Reference   string            `json:"reference" binding:"required"`
	Name        string            `json:"name" binding:"required"`
	Description *string           `json:"description"`
	Attributes  entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.NewProduct(r.Reference, r.Name)
	p.Description = r.Description
	p.Attributes = r.Attributes
	return p
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	Reference   string            `json:"reference" binding:"required"`
	Name        string            `json:"name" binding:"required"`
	Description *string           `json:"description"`
	Attributes  entity.Attributes `json:"attributes"`
	Version     int               `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	p.SetReference(r.Reference)
	p.Name = r.Name
	p.Description = r.Description
	p.Attributes = r.Attributes
	p.Version = r.Version
}

// --- Response DTOs ---

// ProductResponse is the response body for a product.
type ProductResponse struct {
	CatalogResponse
	Description *string `json:"description,omitempty"`
}

// FromProduct creates response DTO from domain entity.
func FromProduct(p *product.Product) *ProductResponse {
	return &ProductResponse{
		CatalogResponse: FromCatalog(p.Catalog),
		Description:     p.Description,
	}
}
