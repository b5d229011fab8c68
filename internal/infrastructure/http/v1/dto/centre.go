package dto

import (
	"medtrack/internal/core/entity"
	"medtrack/internal/domain/catalogs/centre"
)

// --- Request DTOs ---

// CreateCentreRequest is the request body for creating a medical centre.
type CreateCentreRequest struct {
	Reference     string            `json:"reference" binding:"required"`
	Name          string            `json:"name" binding:"required"`
	Address       *string           `json:"address"`
	ContactPerson *string           `json:"contactPerson"`
	Phone         *string           `json:"phone"`
	Attributes    entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCentreRequest) ToEntity() *centre.Centre {
	m := centre.NewCentre(r.Reference, r.Name)
	m.Address = r.Address
	m.ContactPerson = r.ContactPerson
	m.Phone = r.Phone
	m.Attributes = r.Attributes
	return m
}

// UpdateCentreRequest is the request body for updating a medical centre.
type UpdateCentreRequest struct {
	Reference     string            `json:"reference" binding:"required"`
	Name          string            `json:"name" binding:"required"`
	Address       *string           `json:"address"`
	ContactPerson *string           `json:"contactPerson"`
	Phone         *string           `json:"phone"`
	Attributes    entity.Attributes `json:"attributes"`
	Version       int               `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateCentreRequest) ApplyTo(m *centre.Centre) {
	m.SetReference(r.Reference)
	m.Name = r.Name
	m.Address = r.Address
	m.ContactPerson = r.ContactPerson
	m.Phone = r.Phone
	m.Attributes = r.Attributes
	m.Version = r.Version
}

// --- Response DTOs ---

// CentreResponse is the response body for a medical centre.
type CentreResponse struct {
	CatalogResponse
	Address       *string `json:"address,omitempty"`
	ContactPerson *string `json:"contactPerson,omitempty"`
	Phone         *string `json:"phone,omitempty"`
}

// FromCentre creates response DTO from domain entity.
func FromCentre(m *centre.Centre) *CentreResponse {
	return &CentreResponse{
		CatalogResponse: FromCatalog(m.Catalog),
		Address:         m.Address,
		ContactPerson:   m.ContactPerson,
		Phone:           m.Phone,
	}
}
