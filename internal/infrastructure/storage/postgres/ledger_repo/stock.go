// Package ledger_repo provides the PostgreSQL implementation of the stock
// holder ledger.
package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"medtrack/internal/core/apperror"
	"medtrack/internal/core/id"
	"medtrack/internal/domain/stockledger"
	"medtrack/internal/infrastructure/storage/postgres"
)

const stockHoldersTable = "stock_holders"

var holderCols = []string{
	"id", "holder_kind", "document_id", "reference",
	"product_id", "quantity", "remaining_stock", "created_at",
}

// StockHolderRepo implements stockledger.Repository.
type StockHolderRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

var _ stockledger.Repository = (*StockHolderRepo)(nil)

// NewStockHolderRepo creates a new stock holder repository.
func NewStockHolderRepo(txManager *postgres.TxManager) *StockHolderRepo {
	return &StockHolderRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateHolder inserts a new holder row.
func (r *StockHolderRepo) CreateHolder(ctx context.Context, holder *stockledger.StockHolder) error {
	q := r.builder.Insert(stockHoldersTable).
		Columns(holderCols...).
		Values(
			holder.ID, holder.Kind, holder.DocumentID, holder.Reference,
			holder.ProductID, holder.Quantity, holder.Remaining, holder.CreatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert holder: %w", err)
	}

	return nil
}

// DeleteHolder removes a holder row.
func (r *StockHolderRepo) DeleteHolder(ctx context.Context, holderID id.ID) error {
	q := r.builder.Delete(stockHoldersTable).
		Where(squirrel.Eq{"id": holderID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete holder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(stockHoldersTable, holderID.String())
	}

	return nil
}

func (r *StockHolderRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder.Select(holderCols...).From(stockHoldersTable)
}

// GetByDocument returns the holder opened by a document.
func (r *StockHolderRepo) GetByDocument(ctx context.Context, documentID id.ID) (*stockledger.StockHolder, error) {
	return r.getByDocument(ctx, documentID, false)
}

// GetByDocumentForUpdate is GetByDocument with a row lock.
func (r *StockHolderRepo) GetByDocumentForUpdate(ctx context.Context, documentID id.ID) (*stockledger.StockHolder, error) {
	return r.getByDocument(ctx, documentID, true)
}

func (r *StockHolderRepo) getByDocument(ctx context.Context, documentID id.ID, lock bool) (*stockledger.StockHolder, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"document_id": documentID}).
		Limit(1)
	if lock {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var holder stockledger.StockHolder
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &holder, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(stockHoldersTable, documentID.String())
		}
		return nil, fmt.Errorf("get holder by document: %w", err)
	}

	return &holder, nil
}

// GetByProductForUpdate returns all holders of one kind for a product,
// locked, in FIFO order. Concurrent movements against one product block here.
func (r *StockHolderRepo) GetByProductForUpdate(ctx context.Context, productID id.ID, kind stockledger.HolderKind) ([]*stockledger.StockHolder, error) {
	return r.getByProduct(ctx, productID, kind, true)
}

// GetByProduct returns holders without locking (read paths).
func (r *StockHolderRepo) GetByProduct(ctx context.Context, productID id.ID, kind stockledger.HolderKind) ([]*stockledger.StockHolder, error) {
	return r.getByProduct(ctx, productID, kind, false)
}

func (r *StockHolderRepo) getByProduct(ctx context.Context, productID id.ID, kind stockledger.HolderKind, lock bool) ([]*stockledger.StockHolder, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.Eq{"holder_kind": kind}).
		OrderBy("created_at ASC", "id ASC")
	if lock {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var holders []*stockledger.StockHolder
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &holders, sql, args...); err != nil {
		return nil, fmt.Errorf("select holders: %w", err)
	}

	return holders, nil
}

// UpdateRemaining persists the remaining column for the given holders.
// Runs as a single batch when inside a transaction.
func (r *StockHolderRepo) UpdateRemaining(ctx context.Context, holders []*stockledger.StockHolder) error {
	if len(holders) == 0 {
		return nil
	}

	if tx := r.txManager.GetTx(ctx); tx != nil {
		executor := postgres.NewBatchExecutor(r.txManager)
		queries := make([]postgres.BatchQuery, 0, len(holders))
		for _, h := range holders {
			queries = append(queries, postgres.BatchQuery{
				SQL:  "UPDATE stock_holders SET remaining_stock = $1 WHERE id = $2",
				Args: []any{h.Remaining, h.ID},
			})
		}
		if err := executor.ExecuteBatch(ctx, queries); err != nil {
			return fmt.Errorf("update remaining: %w", err)
		}
		return nil
	}

	querier := r.txManager.GetQuerier(ctx)
	for _, h := range holders {
		_, err := querier.Exec(ctx,
			"UPDATE stock_holders SET remaining_stock = $1 WHERE id = $2",
			h.Remaining, h.ID,
		)
		if err != nil {
			return fmt.Errorf("update remaining for %s: %w", h.ID, err)
		}
	}

	return nil
}

// GetTotalRemaining sums remaining stock for a product within one kind.
func (r *StockHolderRepo) GetTotalRemaining(ctx context.Context, productID id.ID, kind stockledger.HolderKind) (int64, error) {
	sql := `
		SELECT COALESCE(SUM(remaining_stock), 0)
		FROM stock_holders
		WHERE product_id = $1 AND holder_kind = $2
	`

	var total int64
	querier := r.txManager.GetQuerier(ctx)
	err := querier.QueryRow(ctx, sql, productID, kind).Scan(&total)
	if err != nil && err != pgx.ErrNoRows {
		return 0, fmt.Errorf("sum remaining: %w", err)
	}

	return total, nil
}

// HasConsumedStock reports whether any holder for the product has been
// partially or fully consumed.
func (r *StockHolderRepo) HasConsumedStock(ctx context.Context, productID id.ID) (bool, error) {
	sql := `
		SELECT 1
		FROM stock_holders
		WHERE product_id = $1 AND remaining_stock < quantity
		LIMIT 1
	`

	var one int
	querier := r.txManager.GetQuerier(ctx)
	err := querier.QueryRow(ctx, sql, productID).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check consumed stock: %w", err)
	}

	return true, nil
}

// GetSummary aggregates per-product totals across purchase-order holders.
func (r *StockHolderRepo) GetSummary(ctx context.Context) ([]stockledger.ProductSummary, error) {
	sql := `
		SELECT
			p.id   AS product_id,
			p.name AS product_name,
			p.reference AS product_reference,
			COALESCE(SUM(h.quantity), 0)        AS total_ordered,
			COALESCE(SUM(h.remaining_stock), 0) AS total_remaining,
			COALESCE(SUM(h.quantity - h.remaining_stock), 0) AS total_used,
			CASE
				WHEN COALESCE(SUM(h.quantity), 0) = 0 THEN 0
				ELSE ROUND(
					SUM(h.quantity - h.remaining_stock) * 100.0 / SUM(h.quantity), 2
				)
			END AS usage_percent
		FROM products p
		LEFT JOIN stock_holders h
			ON h.product_id = p.id AND h.holder_kind = $1
		WHERE p.deletion_mark = false
		GROUP BY p.id, p.name, p.reference
		ORDER BY p.name
	`

	var summaries []stockledger.ProductSummary
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &summaries, sql, stockledger.KindPurchaseOrder); err != nil {
		return nil, fmt.Errorf("select summary: %w", err)
	}

	return summaries, nil
}
