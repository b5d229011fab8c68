package stockledger

import (
	"context"

	"medtrack/internal/core/id"
)

// Repository defines persistence for stock holders.
//
// GetByProductForUpdate must lock the returned rows (SELECT ... FOR UPDATE)
// in FIFO order so concurrent movements against one product serialize.
type Repository interface {
	// CreateHolder inserts a new holder row (document posting).
	CreateHolder(ctx context.Context, holder *StockHolder) error

	// DeleteHolder removes a holder row (document unposting).
	DeleteHolder(ctx context.Context, holderID id.ID) error

	// GetByDocument returns the holder opened by a document.
	GetByDocument(ctx context.Context, documentID id.ID) (*StockHolder, error)

	// GetByDocumentForUpdate is GetByDocument with a row lock.
	GetByDocumentForUpdate(ctx context.Context, documentID id.ID) (*StockHolder, error)

	// GetByProductForUpdate returns all holders of one kind for a product,
	// locked, ordered created_at ASC, id ASC.
	GetByProductForUpdate(ctx context.Context, productID id.ID, kind HolderKind) ([]*StockHolder, error)

	// GetByProduct returns holders without locking (read paths).
	GetByProduct(ctx context.Context, productID id.ID, kind HolderKind) ([]*StockHolder, error)

	// UpdateRemaining persists the Remaining column for the given holders.
	UpdateRemaining(ctx context.Context, holders []*StockHolder) error

	// GetTotalRemaining sums remaining stock for a product within one kind.
	GetTotalRemaining(ctx context.Context, productID id.ID, kind HolderKind) (int64, error)

	// HasConsumedStock reports whether any holder for the product has been
	// partially or fully consumed (used by the product delete guard).
	HasConsumedStock(ctx context.Context, productID id.ID) (bool, error)

	// GetSummary aggregates per-product totals across purchase-order holders.
	GetSummary(ctx context.Context) ([]ProductSummary, error)
}

// ProductSummary is one row of the stock summary report.
type ProductSummary struct {
	ProductID        id.ID   `db:"product_id" json:"productId"`
	ProductName      string  `db:"product_name" json:"productName"`
	ProductReference string  `db:"product_reference" json:"productReference"`
	TotalOrdered     int64   `db:"total_ordered" json:"totalOrdered"`
	TotalRemaining   int64   `db:"total_remaining" json:"totalRemaining"`
	TotalUsed        int64   `db:"total_used" json:"totalUsed"`
	UsagePercent     float64 `db:"usage_percent" json:"usagePercent"`
}
