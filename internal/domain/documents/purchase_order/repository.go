package purchase_order

import (
	"context"
	"time"

	"medtrack/internal/core/id"
	"medtrack/internal/domain"
)

// Repository defines operations for purchase order documents.
type Repository interface {
	Create(ctx context.Context, doc *PurchaseOrder) error
	GetByID(ctx context.Context, docID id.ID) (*PurchaseOrder, error)
	GetByNumber(ctx context.Context, number string) (*PurchaseOrder, error)
	Update(ctx context.Context, doc *PurchaseOrder) error
	Delete(ctx context.Context, docID id.ID) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*PurchaseOrder], error)
	GetForUpdate(ctx context.Context, docID id.ID) (*PurchaseOrder, error)
}

// ListFilter for filtering purchase orders.
type ListFilter struct {
	domain.ListFilter

	ProductID *id.ID
	Posted    *bool
	DateFrom  *time.Time
	DateTo    *time.Time
}
