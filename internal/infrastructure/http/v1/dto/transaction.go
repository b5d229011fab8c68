package dto

import (
	"time"

	"medtrack/internal/core/apperror"
	"medtrack/internal/core/id"
	"medtrack/internal/domain/documents/transaction"
	"medtrack/internal/domain/stockledger"
)

// --- Request DTOs ---

// CreateTransactionRequest is the request body for creating a distribution transaction.
type CreateTransactionRequest struct {
	Date       *time.Time `json:"date"`
	ProductID  string     `json:"productId" binding:"required"`
	LocationID string     `json:"locationId" binding:"required"`
	Quantity   int64      `json:"quantity" binding:"required,min=1"`
	Source     *string    `json:"source"`
	Comment    string     `json:"comment"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateTransactionRequest) ToEntity() (*transaction.Transaction, error) {
	productID, err := id.Parse(r.ProductID)
	if err != nil {
		return nil, apperror.NewValidation("invalid productId format")
	}
	locationID, err := id.Parse(r.LocationID)
	if err != nil {
		return nil, apperror.NewValidation("invalid locationId format")
	}

	doc := transaction.NewTransaction(productID, locationID, r.Quantity)
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.Source != nil {
		doc.Source = stockledger.HolderKind(*r.Source)
	}
	doc.Comment = r.Comment
	return doc, nil
}

// UpdateTransactionRequest is the request body for updating a distribution transaction.
type UpdateTransactionRequest struct {
	Date       *time.Time `json:"date"`
	ProductID  *string    `json:"productId"`
	LocationID *string    `json:"locationId"`
	Quantity   *int64     `json:"quantity"`
	Source     *string    `json:"source"`
	Comment    *string    `json:"comment"`
	Version    int        `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateTransactionRequest) ApplyTo(doc *transaction.Transaction) error {
	if r.ProductID != nil {
		productID, err := id.Parse(*r.ProductID)
		if err != nil {
			return apperror.NewValidation("invalid productId format")
		}
		doc.ProductID = productID
	}
	if r.LocationID != nil {
		locationID, err := id.Parse(*r.LocationID)
		if err != nil {
			return apperror.NewValidation("invalid locationId format")
		}
		doc.LocationID = locationID
	}
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.Quantity != nil {
		doc.Quantity = *r.Quantity
	}
	if r.Source != nil {
		doc.Source = stockledger.HolderKind(*r.Source)
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}
	doc.Version = r.Version
	return nil
}

// --- Response DTOs ---

// TransactionResponse is the response body for a distribution transaction.
type TransactionResponse struct {
	DocumentResponse
	ProductID  string `json:"productId"`
	LocationID string `json:"locationId"`
	Quantity   int64  `json:"quantity"`
	Source     string `json:"source"`
}

// FromTransaction creates response DTO from domain entity.
func FromTransaction(doc *transaction.Transaction) *TransactionResponse {
	return &TransactionResponse{
		DocumentResponse: FromDocument(doc.Document),
		ProductID:        doc.ProductID.String(),
		LocationID:       doc.LocationID.String(),
		Quantity:         doc.Quantity,
		Source:           string(doc.Source),
	}
}
