// Package purchase_order provides the PurchaseOrder document.
// Purchase orders record stock ordered from the Ministry; posting one
// opens a purchase_order stock holder for the full quantity.
package purchase_order

import (
	"context"

	"github.com/shopspring/decimal"

	"medtrack/internal/core/apperror"
	"medtrack/internal/core/entity"
	"medtrack/internal/core/id"
	"medtrack/internal/core/types"
	"medtrack/internal/domain/posting"
	"medtrack/internal/domain/stockledger"
)

// PurchaseOrder represents a Ministry purchase order.
type PurchaseOrder struct {
	entity.Document

	ProductID id.ID `db:"product_id" json:"productId"`

	// Quantity is the ordered quantity in pieces
	Quantity int64 `db:"quantity" json:"quantity"`

	// WarehouseLocation is the free-text storage location
	WarehouseLocation *string `db:"warehouse_location" json:"warehouseLocation,omitempty"`

	// Pricing in BHD (3 decimal places). Optional: zero values mean
	// the order was entered without pricing.
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`

	// TaxRate is the tax percentage (e.g. 10 for 10%)
	TaxRate types.Money `db:"tax_rate" json:"taxRate"`

	// Computed from UnitPrice, Quantity, TaxRate via RecalculateTotals
	TaxAmount       types.Money `db:"tax_amount" json:"taxAmount"`
	TotalWithoutTax types.Money `db:"total_without_tax" json:"totalWithoutTax"`
	TotalWithTax    types.Money `db:"total_with_tax" json:"totalWithTax"`
}

// NewPurchaseOrder creates a new purchase order document.
func NewPurchaseOrder(productID id.ID, quantity int64) *PurchaseOrder {
	po := &PurchaseOrder{
		Document:  entity.NewDocument(),
		ProductID: productID,
		Quantity:  quantity,
	}
	po.RecalculateTotals()
	return po
}

// RecalculateTotals derives tax and total amounts from unit price,
// quantity and tax rate, rounded to fils.
func (p *PurchaseOrder) RecalculateTotals() {
	net := p.UnitPrice.Mul(decimal.NewFromInt(p.Quantity))
	p.TotalWithoutTax = types.RoundBHD(net)
	p.TaxAmount = types.TaxAmount(net, p.TaxRate)
	p.TotalWithTax = types.RoundBHD(p.TotalWithoutTax.Add(p.TaxAmount))
}

// Validate implements entity.Validatable.
func (p *PurchaseOrder) Validate(ctx context.Context) error {
	if err := p.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}

	if p.Quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}

	if p.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price cannot be negative").
			WithDetail("field", "unitPrice")
	}

	if p.TaxRate.IsNegative() {
		return apperror.NewValidation("tax rate cannot be negative").
			WithDetail("field", "taxRate")
	}

	return nil
}

// --- Postable interface implementation ---
// GetID, GetNumber, IsPosted, CanPost, MarkPosted, MarkUnposted are
// inherited from entity.Document.

func (p *PurchaseOrder) GetDocumentType() string { return "purchase_orders" }

// StockEffect opens a purchase_order holder for the full quantity.
func (p *PurchaseOrder) StockEffect(ctx context.Context) (posting.Effect, error) {
	return posting.Effect{
		Intake: &posting.Intake{
			Kind:      stockledger.KindPurchaseOrder,
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
		},
	}, nil
}

var _ posting.Postable = (*PurchaseOrder)(nil)
