package purchase

import (
	"context"
	"time"

	"medtrack/internal/core/id"
	"medtrack/internal/domain"
)

// Repository defines operations for purchase documents.
type Repository interface {
	Create(ctx context.Context, doc *Purchase) error
	GetByID(ctx context.Context, docID id.ID) (*Purchase, error)
	GetByNumber(ctx context.Context, number string) (*Purchase, error)
	Update(ctx context.Context, doc *Purchase) error
	Delete(ctx context.Context, docID id.ID) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Purchase], error)
	GetForUpdate(ctx context.Context, docID id.ID) (*Purchase, error)
}

// ListFilter for filtering purchases.
type ListFilter struct {
	domain.ListFilter

	SupplierID *id.ID
	ProductID  *id.ID
	Posted     *bool
	DateFrom   *time.Time
	DateTo     *time.Time
}
