// Package stockledger provides the FIFO stock ledger.
// Stock enters through posted purchase orders and supplier purchases
// (each posting opens a holder row) and leaves through distribution
// transactions, which consume holders oldest-first.
package stockledger

import (
	"fmt"
	"time"

	"medtrack/internal/core/apperror"
	"medtrack/internal/core/id"
)

// HolderKind identifies which document chain a holder belongs to.
type HolderKind string

const (
	// KindPurchaseOrder holders are opened by Ministry purchase orders.
	KindPurchaseOrder HolderKind = "purchase_order"

	// KindPurchase holders are opened by supplier purchases.
	KindPurchase HolderKind = "purchase"
)

// IsValidKind reports whether k is a known holder kind.
func IsValidKind(k HolderKind) bool {
	return k == KindPurchaseOrder || k == KindPurchase
}

// StockHolder is one batch of stock for a product.
// Invariant: 0 <= Remaining <= Quantity.
type StockHolder struct {
	ID id.ID `db:"id" json:"id"`

	// Kind separates purchase-order stock from supplier-purchase stock.
	// Transactions deduct within a single kind.
	Kind HolderKind `db:"holder_kind" json:"kind"`

	// DocumentID is the posted document that opened this holder.
	DocumentID id.ID `db:"document_id" json:"documentId"`

	// Reference is the opening document's number (PO-2026-00001).
	Reference string `db:"reference" json:"reference"`

	ProductID id.ID `db:"product_id" json:"productId"`

	// Quantity is the total pieces this holder brought in.
	Quantity int64 `db:"quantity" json:"quantity"`

	// Remaining is the unconsumed part of Quantity.
	Remaining int64 `db:"remaining_stock" json:"remaining"`

	// CreatedAt orders holders for FIFO consumption.
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewStockHolder opens a full holder for a posted document.
func NewStockHolder(kind HolderKind, documentID id.ID, reference string, productID id.ID, quantity int64) *StockHolder {
	return &StockHolder{
		ID:         id.New(),
		Kind:       kind,
		DocumentID: documentID,
		Reference:  reference,
		ProductID:  productID,
		Quantity:   quantity,
		Remaining:  quantity,
		CreatedAt:  time.Now().UTC(),
	}
}

// Consumed returns how many pieces have been taken from this holder.
func (h *StockHolder) Consumed() int64 {
	return h.Quantity - h.Remaining
}

// IsUntouched reports whether nothing has been consumed yet.
func (h *StockHolder) IsUntouched() bool {
	return h.Remaining == h.Quantity
}

// CheckInvariant verifies 0 <= Remaining <= Quantity.
func (h *StockHolder) CheckInvariant() error {
	if h.Quantity < 0 {
		return apperror.NewValidation("holder quantity cannot be negative").
			WithDetail("holder_id", h.ID.String())
	}
	if h.Remaining < 0 || h.Remaining > h.Quantity {
		return apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			fmt.Sprintf("holder remaining %d outside [0, %d]", h.Remaining, h.Quantity),
		).WithDetail("holder_id", h.ID.String())
	}
	return nil
}
