// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"time"

	"medtrack/internal/core/entity"
	"medtrack/internal/core/id"
)

// --- List Response ---

// ListResponse wraps list results with pagination.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// --- Base DTOs ---

// BaseResponse contains common response fields.
type BaseResponse struct {
	ID           string            `json:"id"`
	DeletionMark bool              `json:"deletionMark"`
	Version      int               `json:"version"`
	Attributes   entity.Attributes `json:"attributes,omitempty"`
}

// FromBaseCatalog creates BaseResponse from entity.BaseCatalog.
func FromBaseCatalog(b entity.BaseCatalog) BaseResponse {
	return BaseResponse{
		ID:           b.ID.String(),
		DeletionMark: b.DeletionMark,
		Version:      b.Version,
		Attributes:   b.Attributes,
	}
}

// --- Catalog DTOs ---

// CatalogResponse contains catalog fields.
type CatalogResponse struct {
	BaseResponse
	Reference string `json:"reference"`
	Name      string `json:"name"`
}

// FromCatalog creates CatalogResponse from entity.Catalog.
func FromCatalog(c entity.Catalog) CatalogResponse {
	return CatalogResponse{
		BaseResponse: FromBaseCatalog(c.BaseCatalog),
		Reference:    c.Reference,
		Name:         c.Name,
	}
}

// --- Document DTOs ---

// DocumentResponse contains document fields.
type DocumentResponse struct {
	BaseResponse
	Number        string    `json:"number"`
	Date          time.Time `json:"date"`
	Posted        bool      `json:"posted"`
	PostedVersion int       `json:"postedVersion"`
	Comment       string    `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FromDocument creates DocumentResponse from entity.Document.
func FromDocument(d entity.Document) DocumentResponse {
	return DocumentResponse{
		BaseResponse: BaseResponse{
			ID:           d.ID.String(),
			DeletionMark: d.DeletionMark,
			Version:      d.Version,
			Attributes:   d.Attributes,
		},
		Number:        d.Number,
		Date:          d.Date,
		Posted:        d.Posted,
		PostedVersion: d.PostedVersion,
		Comment:       d.Comment,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// --- ID Response ---

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// --- Deletion ---

type SetDeletionMarkRequest struct {
	Marked bool `json:"marked"`
}

// parseID is a helper for optional string IDs in requests.
func parseID(s *string) (*id.ID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	parsed, err := id.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
