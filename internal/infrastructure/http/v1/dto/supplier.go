package dto

import (
	"medtrack/internal/core/entity"
	"medtrack/internal/domain/catalogs/supplier"
)

// --- Request DTOs ---

// CreateSupplierRequest is the request body for creating a supplier.
type CreateSupplierRequest struct {
	Reference     string            `json:"reference" binding:"required"`
	Name          string            `json:"name" binding:"required"`
	ContactPerson *string           `json:"contactPerson"`
	Phone         *string           `json:"phone"`
	Email         *string           `json:"email"`
	Address       *string           `json:"address"`
	Attributes    entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateSupplierRequest) ToEntity() *supplier.Supplier {
	s := supplier.NewSupplier(r.Reference, r.Name)
	s.ContactPerson = r.ContactPerson
	s.Phone = r.Phone
	s.Email = r.Email
	s.Address = r.Address
	s.Attributes = r.Attributes
	return s
}

// UpdateSupplierRequest is the request body for updating a supplier.
type UpdateSupplierRequest struct {
	Reference     string            `json:"reference" binding:"required"`
	Name          string            `json:"name" binding:"required"`
	ContactPerson *string           `json:"contactPerson"`
	Phone         *string           `json:"phone"`
	Email         *string           `json:"email"`
	Address       *string           `json:"address"`
	Attributes    entity.Attributes `json:"attributes"`
	Version       int               `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateSupplierRequest) ApplyTo(s *supplier.Supplier) {
	s.SetReference(r.Reference)
	s.Name = r.Name
	s.ContactPerson = r.ContactPerson
	s.Phone = r.Phone
	s.Email = r.Email
	s.Address = r.Address
	s.Attributes = r.Attributes
	s.Version = r.Version
}

// --- Response DTOs ---

// SupplierResponse is the response body for a supplier.
type SupplierResponse struct {
	CatalogResponse
	ContactPerson *string `json:"contactPerson,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Email         *string `json:"email,omitempty"`
	Address       *string `json:"address,omitempty"`
}

// FromSupplier creates response DTO from domain entity.
func FromSupplier(s *supplier.Supplier) *SupplierResponse {
	return &SupplierResponse{
		CatalogResponse: FromCatalog(s.Catalog),
		ContactPerson:   s.ContactPerson,
		Phone:           s.Phone,
		Email:           s.Email,
		Address:         s.Address,
	}
}
