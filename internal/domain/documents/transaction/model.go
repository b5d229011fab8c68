// Package transaction provides the Transaction document.
// Transactions record distribution of stock to a location; posting one
// deducts the quantity FIFO from the chosen holder kind.
package transaction

import (
	"context"

	"medtrack/internal/core/apperror"
	"medtrack/internal/core/entity"
	"medtrack/internal/core/id"
	"medtrack/internal/domain/posting"
	"medtrack/internal/domain/stockledger"
)

// Transaction represents a stock distribution to a location.
type Transaction struct {
	entity.Document

	ProductID id.ID `db:"product_id" json:"productId"`

	// LocationID is the receiving distribution location
	LocationID id.ID `db:"location_id" json:"locationId"`

	// Quantity is the distributed quantity in pieces
	Quantity int64 `db:"quantity" json:"quantity"`

	// Source selects which holder kind the deduction draws from.
	// Defaults to purchase_order.
	Source stockledger.HolderKind `db:"source_kind" json:"source"`
}

// NewTransaction creates a new distribution transaction.
func NewTransaction(productID, locationID id.ID, quantity int64) *Transaction {
	return &Transaction{
		Document:   entity.NewDocument(),
		ProductID:  productID,
		LocationID: locationID,
		Quantity:   quantity,
		Source:     stockledger.KindPurchaseOrder,
	}
}

// Validate implements entity.Validatable.
func (t *Transaction) Validate(ctx context.Context) error {
	if err := t.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(t.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}

	if id.IsNil(t.LocationID) {
		return apperror.NewValidation("location is required").
			WithDetail("field", "locationId")
	}

	if t.Quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}

	if t.Source == "" {
		t.Source = stockledger.KindPurchaseOrder
	}
	if !stockledger.IsValidKind(t.Source) {
		return apperror.NewValidation("invalid source kind").
			WithDetail("field", "source").
			WithDetail("value", string(t.Source))
	}

	return nil
}

// --- Postable interface implementation ---

func (t *Transaction) GetDocumentType() string { return "transactions" }

// StockEffect deducts the quantity FIFO from the source holder kind.
func (t *Transaction) StockEffect(ctx context.Context) (posting.Effect, error) {
	source := t.Source
	if source == "" {
		source = stockledger.KindPurchaseOrder
	}

	return posting.Effect{
		Outflow: &posting.Outflow{
			Kind:      source,
			ProductID: t.ProductID,
			Quantity:  t.Quantity,
		},
	}, nil
}

var _ posting.Postable = (*Transaction)(nil)
