package coupon

import (
	"context"
	"time"

	"medtrack/internal/core/id"
	"medtrack/internal/domain"
)

// Repository defines operations for patient coupons.
type Repository interface {
	Create(ctx context.Context, doc *Coupon) error

	// CreateBatch inserts many coupons at once (COPY-based).
	CreateBatch(ctx context.Context, docs []*Coupon) error

	GetByID(ctx context.Context, docID id.ID) (*Coupon, error)
	GetByNumber(ctx context.Context, number string) (*Coupon, error)
	Update(ctx context.Context, doc *Coupon) error
	Delete(ctx context.Context, docID id.ID) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Coupon], error)
}

// ListFilter for filtering coupons.
type ListFilter struct {
	domain.ListFilter

	MedicalCentreID *id.ID
	LocationID      *id.ID
	CPR             *string
	Verified        *bool
	DateFrom        *time.Time
	DateTo          *time.Time
}
