package dto

import (
	"time"

	"medtrack/internal/core/apperror"
	"medtrack/internal/core/id"
	"medtrack/internal/core/types"
	"medtrack/internal/domain/documents/purchase_order"
)

// --- Request DTOs ---

// CreatePurchaseOrderRequest is the request body for creating a purchase order.
type CreatePurchaseOrderRequest struct {
	Date              *time.Time  `json:"date"`
	ProductID         string      `json:"productId" binding:"required"`
	Quantity          int64       `json:"quantity" binding:"required,min=1"`
	WarehouseLocation *string     `json:"warehouseLocation"`
	UnitPrice         types.Money `json:"unitPrice"`
	TaxRate           types.Money `json:"taxRate"`
	Comment           string      `json:"comment"`
}

// ToEntity converts DTO to domain entity.
func (r *CreatePurchaseOrderRequest) ToEntity() (*purchase_order.PurchaseOrder, error) {
	productID, err := id.Parse(r.ProductID)
	if err != nil {
		return nil, apperror.NewValidation("invalid productId format")
	}

	doc := purchase_order.NewPurchaseOrder(productID, r.Quantity)
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.WarehouseLocation = r.WarehouseLocation
	doc.UnitPrice = r.UnitPrice
	doc.TaxRate = r.TaxRate
	doc.Comment = r.Comment
	doc.RecalculateTotals()
	return doc, nil
}

// UpdatePurchaseOrderRequest is the request body for updating a purchase order.
type UpdatePurchaseOrderRequest struct {
	Date              *time.Time   `json:"date"`
	ProductID         *string      `json:"productId"`
	Quantity          *int64       `json:"quantity"`
	WarehouseLocation *string      `json:"warehouseLocation"`
	UnitPrice         *types.Money `json:"unitPrice"`
	TaxRate           *types.Money `json:"taxRate"`
	Comment           *string      `json:"comment"`
	Version           int          `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdatePurchaseOrderRequest) ApplyTo(doc *purchase_order.PurchaseOrder) error {
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
	if r.WarehouseLocation != nil {
		doc.WarehouseLocation = r.WarehouseLocation
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

// PurchaseOrderResponse is the response body for a purchase order.
type PurchaseOrderResponse struct {
	DocumentResponse
	ProductID         string      `json:"productId"`
	Quantity          int64       `json:"quantity"`
	WarehouseLocation *string     `json:"warehouseLocation,omitempty"`
	UnitPrice         types.Money `json:"unitPrice"`
	TaxRate           types.Money `json:"taxRate"`
	TaxAmount         types.Money `json:"taxAmount"`
	TotalWithoutTax   types.Money `json:"totalWithoutTax"`
	TotalWithTax      types.Money `json:"totalWithTax"`
}

// FromPurchaseOrder creates response DTO from domain entity.
func FromPurchaseOrder(doc *purchase_order.PurchaseOrder) *PurchaseOrderResponse {
	return &PurchaseOrderResponse{
		DocumentResponse:  FromDocument(doc.Document),
		ProductID:         doc.ProductID.String(),
		Quantity:          doc.Quantity,
		WarehouseLocation: doc.WarehouseLocation,
		UnitPrice:         doc.UnitPrice,
		TaxRate:           doc.TaxRate,
		TaxAmount:         doc.TaxAmount,
		TotalWithoutTax:   doc.TotalWithoutTax,
		TotalWithTax:      doc.TotalWithTax,
	}
}
