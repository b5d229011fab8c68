package dto

import (
	"medtrack/internal/core/entity"
	"medtrack/internal/domain/catalogs/location"
)

// --- Request DTOs ---

// CreateLocationRequest is the request body for creating a location.
type CreateLocationRequest struct {
	Reference     string            `json:"reference" binding:"required"`
	Name          string            `json:"name" binding:"required"`
	Address       *string           `json:"address"`
	ContactPerson *string           `json:"contactPerson"`
	Phone         *string           `json:"phone"`
	Attributes    entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateLocationRequest) ToEntity() *location.Location {
	l := location.NewLocation(r.Reference, r.Name)
	l.Address = r.Address
	l.ContactPerson = r.ContactPerson
	l.Phone = r.Phone
	l.Attributes = r.Attributes
	return l
}

// UpdateLocationRequest is the request body for updating a location.
type UpdateLocationRequest struct {
	Reference     string            `json:"reference" binding:"required"`
	Name          string            `json:"name" binding:"required"`
	Address       *string           `json:"address"`
	ContactPerson *string           `json:"contactPerson"`
	Phone         *string           `json:"phone"`
	Attributes    entity.Attributes `json:"attributes"`
	Version       int               `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateLocationRequest) ApplyTo(l *location.Location) {
	l.SetReference(r.Reference)
	l.Name = r.Name
	l.Address = r.Address
	l.ContactPerson = r.ContactPerson
	l.Phone = r.Phone
	l.Attributes = r.Attributes
	l.Version = r.Version
}

// --- Response DTOs ---

// LocationResponse is the response body for a location.
type LocationResponse struct {
	CatalogResponse
	Address       *string `json:"address,omitempty"`
	ContactPerson *string `json:"contactPerson,omitempty"`
	Phone         *string `json:"phone,omitempty"`
}

// FromLocation creates response DTO from domain entity.
func FromLocation(l *location.Location) *LocationResponse {
	return &LocationResponse{
		CatalogResponse: FromCatalog(l.Catalog),
		Address:         l.Address,
		ContactPerson:   l.ContactPerson,
		Phone:           l.Phone,
	}
}
