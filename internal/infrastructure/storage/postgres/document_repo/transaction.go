package document_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"medtrack/internal/domain"
	"medtrack/internal/domain/documents/transaction"
	"medtrack/internal/infrastructure/storage/postgres"
)

const transactionTable = "transactions"

// TransactionRepo implements transaction.Repository.
type TransactionRepo struct {
	*BaseDocumentRepo[*transaction.Transaction]
}

var _ transaction.Repository = (*TransactionRepo)(nil)

// NewTransactionRepo creates a new transaction repository.
func NewTransactionRepo(txManager *postgres.TxManager) *TransactionRepo {
	return &TransactionRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			transactionTable,
			postgres.ExtractDBColumns[transaction.Transaction](),
			func() *transaction.Transaction { return &transaction.Transaction{} },
		),
	}
}

func (r *TransactionRepo) List(ctx context.Context, filter transaction.ListFilter) (domain.ListResult[*transaction.Transaction], error) {
	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"product_id": *filter.ProductID})
	}

	if filter.LocationID != nil {
		q = q.Where(squirrel.Eq{"location_id": *filter.LocationID})
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
