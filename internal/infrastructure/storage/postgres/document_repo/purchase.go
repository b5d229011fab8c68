package document_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"medtrack/internal/domain"
	"medtrack/internal/domain/documents/purchase"
	"medtrack/internal/infrastructure/storage/postgres"
)

const purchaseTable = "purchases"

// PurchaseRepo implements purchase.Repository.
type PurchaseRepo struct {
	*BaseDocumentRepo[*purchase.Purchase]
}

var _ purchase.Repository = (*PurchaseRepo)(nil)

// NewPurchaseRepo creates a new purchase repository.
func NewPurchaseRepo(txManager *postgres.TxManager) *PurchaseRepo {
	return &PurchaseRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			purchaseTable,
			postgres.ExtractDBColumns[purchase.Purchase](),
			func() *purchase.Purchase { return &purchase.Purchase{} },
		),
	}
}

func (r *PurchaseRepo) List(ctx context.Context, filter purchase.ListFilter) (domain.ListResult[*purchase.Purchase], error) {
	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.SupplierID != nil {
		q = q.Where(squirrel.Eq{"supplier_id": *filter.SupplierID})
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
		searchPattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": searchPattern},
			squirrel.ILike{"order_reference": searchPattern},
		})
	}

	return r.selectList(ctx, q, filter.ListFilter)
}
