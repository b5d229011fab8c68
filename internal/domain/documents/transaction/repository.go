package transaction

import (
	"context"
	"time"

	"medtrack/internal/core/id"
	"medtrack/internal/domain"
)

// Repository defines operations for transaction documents.
type Repository interface {
	Create(ctx context.Context, doc *Transaction) error
	GetByID(ctx context.Context, docID id.ID) (*Transaction, error)
	GetByNumber(ctx context.Context, number string) (*Transaction, error)
	Update(ctx context.Context, doc *Transaction) error
	Delete(ctx context.Context, docID id.ID) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Transaction], error)
	GetForUpdate(ctx context.Context, docID id.ID) (*Transaction, error)
}

// ListFilter for filtering transactions.
type ListFilter struct {
	domain.ListFilter

	ProductID  *id.ID
	LocationID *id.ID
	Posted     *bool
	DateFrom   *time.Time
	DateTo     *time.Time
}
