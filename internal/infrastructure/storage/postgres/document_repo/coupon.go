package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"medtrack/internal/domain"
	"medtrack/internal/domain/documents/coupon"
	"medtrack/internal/infrastructure/storage/postgres"
)

const couponTable = "patient_coupons"

// CouponRepo implements coupon.Repository.
type CouponRepo struct {
	*BaseDocumentRepo[*coupon.Coupon]
	inserter *postgres.BatchInserter
}

var _ coupon.Repository = (*CouponRepo)(nil)

// NewCouponRepo creates a new patient coupon repository.
func NewCouponRepo(txManager *postgres.TxManager) *CouponRepo {
	return &CouponRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			couponTable,
			postgres.ExtractDBColumns[coupon.Coupon](),
			func() *coupon.Coupon { return &coupon.Coupon{} },
		),
		inserter: postgres.NewBatchInserter(txManager),
	}
}

// CreateBatch inserts many coupons in one COPY operation.
// Must run inside a transaction.
func (r *CouponRepo) CreateBatch(ctx context.Context, docs []*coupon.Coupon) error {
	if len(docs) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(docs))
	for _, doc := range docs {
		data := postgres.StructToMap(doc)
		row := make([]any, len(r.selectCols))
		for i, col := range r.selectCols {
			row[i] = data[col]
		}
		rows = append(rows, row)
	}

	inserted, err := r.inserter.CopyFromSlice(ctx, couponTable, r.selectCols, rows)
	if err != nil {
		return fmt.Errorf("copy coupons: %w", err)
	}
	if inserted != int64(len(docs)) {
		return fmt.Errorf("copy coupons: inserted %d of %d rows", inserted, len(docs))
	}

	return nil
}

func (r *CouponRepo) List(ctx context.Context, filter coupon.ListFilter) (domain.ListResult[*coupon.Coupon], error) {
	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.MedicalCentreID != nil {
		q = q.Where(squirrel.Eq{"medical_centre_id": *filter.MedicalCentreID})
	}

	if filter.LocationID != nil {
		q = q.Where(squirrel.Eq{"location_id": *filter.LocationID})
	}

	if filter.CPR != nil {
		q = q.Where(squirrel.Eq{"cpr": *filter.CPR})
	}

	if filter.Verified != nil {
		q = q.Where(squirrel.Eq{"verified": *filter.Verified})
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
			squirrel.ILike{"patient_name": searchPattern},
			squirrel.ILike{"cpr": searchPattern},
		})
	}

	return r.selectList(ctx, q, filter.ListFilter)
}
