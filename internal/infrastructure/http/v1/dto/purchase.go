package dto

import (
	"time"

	"medtrack/internal/core/apperror"
	"medtrack/internal/core/id"
	"medtrack/internal/core/types"
	"medtrack/internal/domain/documents/purchase"
)

// --- Request DTOs ---

// CreatePurchaseRequest is the request body for creating a purchase.
type CreatePurchaseRequest struct {
	Date           *time.Time  `json:"date"`
	SupplierID     string      `json:"supplierId" binding:"required"`
	ProductID      string      `json:"productId" binding:"required"`
	Quantity       int64       `json:"quantity" binding:"required,min=1"`
	OrderReference *string     `json:"orderReference"`
	UnitPrice      types.Money `json:"unitPrice"`
	TaxRate        types.Money `json:"taxRate"`
	Comment        string      `json:"comment"`
}

// ToEntity converts DTO to domain entity.
func (r *CreatePurchaseRequest) ToEntity() (*purchase.Purchase, error) {
	supplierID, err := id.Parse(r.SupplierID)
	if err != nil {
		return nil, apperror.NewValidation("invalid supplierId format")
	}
	productID, err := id.Parse(r.ProductID)
	if err != nil {
		return nil, apperror.NewValidation("invalid productId format")
	}

	doc := purchase.NewPurchase(supplierID, productID, r.Quantity)
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.OrderReference = r.OrderReference
	doc.UnitPrice = r.UnitPrice
	doc.TaxRate = r.TaxRate
	doc.Comment = r.Comment
	doc.RecalculateTotals()
	return doc, nil
}

// UpdatePurchaseRequest is the request body for updating a purchase.
type UpdatePurchaseRequest struct {
	Date           *time.Time   `json:"date"`
	SupplierID     *string      `json:"supplierId"`
	ProductID      *string      `json:"productId"`
	Quantity       *int64       `json:"quantity"`
	OrderReference *string      `json:"orderReference"`
	UnitPrice      *types.Money `json:"unitPrice"`
	TaxRate        *types.Money `json:"taxRate"`
	Comment        *string      `json:"comment"`
	Version        int          `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdatePurchaseRequest) ApplyTo(doc *purchase.Purchase) error {
	if r.SupplierID != nil {
		supplierID, err := id.Parse(*r.SupplierID)
		if err != nil {
			return apperror.NewValidation("invalid supplierId format")
		}
		doc.SupplierID = supplierID
	}
	if r.ProductID != nil {
		productID, err := id.Parse(*r.ProductID)
		if err != nil {
			return apperror.NewValidation("invalid productId format")
		}
		doc.ProductID = productID
	}
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.Quantity != nil {
		doc.Quantity = *r.Quantity
	}
	if r.OrderReference != nil {
		doc.OrderReference = r.OrderReference
	}
	if r.UnitPrice != nil {
		doc.UnitPrice = *r.UnitPrice
	}
	if r.TaxRate != nil {
		doc.TaxRate = *r.TaxRate
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}
	doc.Version = r.Version
	doc.RecalculateTotals()
	return nil
}

// --- Response DTOs ---

// PurchaseResponse is the response body for a purchase.
type PurchaseResponse struct {
	DocumentResponse
	SupplierID      string      `json:"supplierId"`
	ProductID       string      `json:"productId"`
	Quantity        int64       `json:"quantity"`
	OrderReference  *string     `json:"orderReference,omitempty"`
	UnitPrice       types.Money `json:"unitPrice"`
	TaxRate         types.Money `json:"taxRate"`
	TaxAmount       types.Money `json:"taxAmount"`
	TotalWithoutTax types.Money `json:"totalWithoutTax"`
	TotalWithTax    types.Money `json:"totalWithTax"`
}

// FromPurchase creates response DTO from domain entity.
func FromPurchase(doc *purchase.Purchase) *PurchaseResponse {
	return &PurchaseResponse{
		DocumentResponse: FromDocument(doc.Document),
		SupplierID:       doc.SupplierID.String(),
		ProductID:        doc.ProductID.String(),
		Quantity:         doc.Quantity,
		OrderReference:   doc.OrderReference,
		UnitPrice:        doc.UnitPrice,
		TaxRate:          doc.TaxRate,
		TaxAmount:        doc.TaxAmount,
		TotalWithoutTax:  doc.TotalWithoutTax,
		TotalWithTax:     doc.TotalWithTax,
	}
}
