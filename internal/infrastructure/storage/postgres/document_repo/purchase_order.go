package document_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"medtrack/internal/domain"
	"medtrack/internal/domain/documents/purchase_order"
	"medtrack/internal/infrastructure/storage/postgres"
)

const purchaseOrderTable = "purchase_orders"

// PurchaseOrderRepo implements purchase_order.Repository.
type PurchaseOrderRepo struct {
	*BaseDocumentRepo[*purchase_order.PurchaseOrder]
}

var _ purchase_order.Repository = (*PurchaseOrderRepo)(nil)

// NewPurchaseOrderRepo creates a new purchase order repository.
func NewPurchaseOrderRepo(txManager *postgres.TxManager) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			purchaseOrderTable,
			postgres.ExtractDBColumns[purchase_order.PurchaseOrder](),
			func() *purchase_order.PurchaseOrder { return &purchase_order.PurchaseOrder{} },
		),
	}
}

func (r *PurchaseOrderRepo) List(ctx context.Context, filter purchase_order.ListFilter) (domain.ListResult[*purchase_order.PurchaseOrder], error) {
	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"product_id": *filter.ProductID})
	}

	if filter.Posted != nil {
		q = q.Where(squirrel.Eq{"posted": *filter.Posted})
	}

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}

	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"number": "%" + filter.Search + "%"})
	}

	return r.selectList(ctx, q, filter.ListFilter)
}
