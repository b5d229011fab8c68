// Package purchase provides the Purchase document.
// Purchases record stock bought directly from suppliers; posting one
// opens a purchase stock holder for the full quantity.
package purchase

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

// Purchase represents a supplier purchase (invoice).
type Purchase struct {
	entity.Document

	SupplierID id.ID `db:"supplier_id" json:"supplierId"`

	// OrderReference links back to the Ministry purchase order number,
	// when the purchase fulfils one.
	OrderReference *string `db:"order_reference" json:"orderReference,omitempty"`

	ProductID id.ID `db:"product_id" json:"productId"`

	// Quantity is the purchased quantity in pieces
	Quantity int64 `db:"quantity" json:"quantity"`

	// Pricing in BHD (3 decimal places)
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`
	TaxRate   types.Money `db:"tax_rate" json:"taxRate"`

	TaxAmount       types.Money `db:"tax_amount" json:"taxAmount"`
	TotalWithoutTax types.Money `db:"total_without_tax" json:"totalWithoutTax"`
	TotalWithTax    types.Money `db:"total_with_tax" json:"totalWithTax"`
}

// NewPurchase creates a new purchase document.
func NewPurchase(supplierID, productID id.ID, quantity int64) *Purchase {
	p := &Purchase{
		Document:   entity.NewDocument(),
		SupplierID: supplierID,
		ProductID:  productID,
		Quantity:   quantity,
	}
	p.RecalculateTotals()
	return p
}

// RecalculateTotals derives tax and total amounts, rounded to fils.
func (p *Purchase) RecalculateTotals() {
	net := p.UnitPrice.Mul(decimal.NewFromInt(p.Quantity))
	p.TotalWithoutTax = types.RoundBHD(net)
	p.TaxAmount = types.TaxAmount(net, p.TaxRate)
	p.TotalWithTax = types.RoundBHD(p.TotalWithoutTax.Add(p.TaxAmount))
}

// Validate implements entity.Validatable.
func (p *Purchase) Validate(ctx context.Context) error {
	if err := p.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.SupplierID) {
		return apperror.NewValidation("supplier is required").
			WithDetail("field", "supplierId")
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

func (p *Purchase) GetDocumentType() string { return "purchases" }

// StockEffect opens a purchase holder for the full quantity.
func (p *Purchase) StockEffect(ctx context.Context) (posting.Effect, error) {
	return posting.Effect{
		Intake: &posting.Intake{
			Kind:      stockledger.KindPurchase,
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
		},
	}, nil
}

var _ posting.Postable = (*Purchase)(nil)
