package stockledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medtrack/internal/core/apperror"
	"medtrack/internal/core/id"
)

// passthroughTxManager runs fn without a real transaction.
type passthroughTxManager struct {
	calls int
}

func (m *passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

// memoryRepo is an in-memory Repository for service tests.
type memoryRepo struct {
	holders map[id.ID]*StockHolder

	updated []id.ID
	deleted []id.ID
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{holders: make(map[id.ID]*StockHolder)}
}

func (r *memoryRepo) add(h *StockHolder) *StockHolder {
	r.holders[h.ID] = h
	return h
}

func (r *memoryRepo) CreateHolder(_ context.Context, holder *StockHolder) error {
	r.holders[holder.ID] = holder
	return nil
}

func (r *memoryRepo) DeleteHolder(_ context.Context, holderID id.ID) error {
	delete(r.holders, holderID)
	r.deleted = append(r.deleted, holderID)
	return nil
}

func (r *memoryRepo) GetByDocument(_ context.Context, documentID id.ID) (*StockHolder, error) {
	for _, h := range r.holders {
		if h.DocumentID == documentID {
			return h, nil
		}
	}
	return nil, apperror.NewNotFound("stock holder", documentID)
}

func (r *memoryRepo) GetByDocumentForUpdate(ctx context.Context, documentID id.ID) (*StockHolder, error) {
	return r.GetByDocument(ctx, documentID)
}

func (r *memoryRepo) GetByProduct(_ context.Context, productID id.ID, kind HolderKind) ([]*StockHolder, error) {
	var out []*StockHolder
	for _, h := range r.holders {
		if h.ProductID == productID && h.Kind == kind {
			out = append(out, h)
		}
	}
	return sortFIFO(out), nil
}

func (r *memoryRepo) GetByProductForUpdate(ctx context.Context, productID id.ID, kind HolderKind) ([]*StockHolder, error) {
	return r.GetByProduct(ctx, productID, kind)
}

func (r *memoryRepo) UpdateRemaining(_ context.Context, holders []*StockHolder) error {
	for _, h := range holders {
		r.updated = append(r.updated, h.ID)
	}
	return nil
}

func (r *memoryRepo) GetTotalRemaining(_ context.Context, productID id.ID, kind HolderKind) (int64, error) {
	total := int64(0)
	for _, h := range r.holders {
		if h.ProductID == productID && h.Kind == kind {
			total += h.Remaining
		}
	}
	return total, nil
}

func (r *memoryRepo) HasConsumedStock(_ context.Context, productID id.ID) (bool, error) {
	for _, h := range r.holders {
		if h.ProductID == productID && !h.IsUntouched() {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepo) GetSummary(_ context.Context) ([]ProductSummary, error) {
	byProduct := make(map[id.ID]*ProductSummary)
	var order []id.ID
	for _, h := range r.holders {
		if h.Kind != KindPurchaseOrder {
			continue
		}
		row, ok := byProduct[h.ProductID]
		if !ok {
			row = &ProductSummary{ProductID: h.ProductID}
			byProduct[h.ProductID] = row
			order = append(order, h.ProductID)
		}
		row.TotalOrdered += h.Quantity
		row.TotalRemaining += h.Remaining
		row.TotalUsed += h.Consumed()
	}

	out := make([]ProductSummary, 0, len(order))
	for _, pid := range order {
		out = append(out, *byProduct[pid])
	}
	return out, nil
}

func TestServiceDeduct(t *testing.T) {
	ctx := context.Background()
	productID := id.New()
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	setup := func() (*Service, *memoryRepo, *passthroughTxManager) {
		repo := newMemoryRepo()
		txm := &passthroughTxManager{}
		return NewService(repo, txm, nil), repo, txm
	}

	t.Run("deducts under transaction and persists touched holders", func(t *testing.T) {
		svc, repo, txm := setup()

		first := repo.add(testHolder(productID, "PO-2026-00001", 5, 5, base))
		second := repo.add(testHolder(productID, "PO-2026-00002", 5, 5, base.Add(time.Hour)))

		allocations, err := svc.Deduct(ctx, KindPurchaseOrder, productID, 7)
		require.NoError(t, err)

		require.Len(t, allocations, 2)
		assert.Equal(t, 1, txm.calls)
		assert.ElementsMatch(t, []id.ID{first.ID, second.ID}, repo.updated)
		assert.Equal(t, int64(0), first.Remaining)
		assert.Equal(t, int64(3), second.Remaining)
	})

	t.Run("shortage writes nothing", func(t *testing.T) {
		svc, repo, _ := setup()
		repo.add(testHolder(productID, "PO-2026-00001", 5, 2, base))

		_, err := svc.Deduct(ctx, KindPurchaseOrder, productID, 3)
		require.Error(t, err)
		assert.True(t, apperror.IsInsufficientStock(err))
		assert.Empty(t, repo.updated)
	})

	t.Run("kinds are isolated", func(t *testing.T) {
		svc, repo, _ := setup()
		repo.add(testHolder(productID, "PO-2026-00001", 5, 5, base))

		purchase := testHolder(productID, "PUR-2026-00001", 5, 5, base)
		purchase.Kind = KindPurchase
		repo.add(purchase)

		allocations, err := svc.Deduct(ctx, KindPurchase, productID, 4)
		require.NoError(t, err)
		require.Len(t, allocations, 1)
		assert.Equal(t, purchase.ID, allocations[0].HolderID)
	})
}

func TestServiceRestore(t *testing.T) {
	ctx := context.Background()
	productID := id.New()
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	t.Run("lenient restore reports unrestored remainder", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := NewService(repo, &passthroughTxManager{}, nil)
		h := repo.add(testHolder(productID, "PO-2026-00001", 5, 4, base))

		result, err := svc.Restore(ctx, KindPurchaseOrder, productID, 3, false)
		require.NoError(t, err)

		assert.Equal(t, int64(2), result.Unrestored)
		assert.Equal(t, int64(5), h.Remaining)
	})

	t.Run("strict restore fails on overflow", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := NewService(repo, &passthroughTxManager{}, nil)
		h := repo.add(testHolder(productID, "PO-2026-00001", 5, 4, base))

		_, err := svc.Restore(ctx, KindPurchaseOrder, productID, 3, true)
		require.Error(t, err)

		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeRestoreOverflow, appErr.Code)
		assert.Equal(t, int64(4), h.Remaining)
		assert.Empty(t, repo.updated)
	})
}

func TestServiceHolders(t *testing.T) {
	ctx := context.Background()
	productID := id.New()
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	t.Run("open holder validates inputs", func(t *testing.T) {
		svc := NewService(newMemoryRepo(), &passthroughTxManager{}, nil)

		_, err := svc.OpenHolder(ctx, "warehouse", id.New(), "X", productID, 5)
		require.Error(t, err)

		_, err = svc.OpenHolder(ctx, KindPurchase, id.New(), "PUR-2026-00001", productID, 0)
		require.Error(t, err)
	})

	t.Run("open holder starts full", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := NewService(repo, &passthroughTxManager{}, nil)

		docID := id.New()
		holder, err := svc.OpenHolder(ctx, KindPurchaseOrder, docID, "PO-2026-00001", productID, 120)
		require.NoError(t, err)

		assert.Equal(t, int64(120), holder.Quantity)
		assert.Equal(t, int64(120), holder.Remaining)
		assert.Contains(t, repo.holders, holder.ID)
	})

	t.Run("close holder fails for unknown document", func(t *testing.T) {
		svc := NewService(newMemoryRepo(), &passthroughTxManager{}, nil)

		err := svc.CloseHolder(ctx, id.New())
		require.Error(t, err)

		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeHolderNotFound, appErr.Code)
	})

	t.Run("close holder refuses consumed stock", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := NewService(repo, &passthroughTxManager{}, nil)

		h := repo.add(testHolder(productID, "PO-2026-00001", 10, 6, base))

		err := svc.CloseHolder(ctx, h.DocumentID)
		require.Error(t, err)

		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeDocumentInUse, appErr.Code)
		assert.Contains(t, repo.holders, h.ID)
	})

	t.Run("close holder removes untouched holder", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := NewService(repo, &passthroughTxManager{}, nil)

		h := repo.add(testHolder(productID, "PO-2026-00001", 10, 10, base))

		err := svc.CloseHolder(ctx, h.DocumentID)
		require.NoError(t, err)
		assert.NotContains(t, repo.holders, h.ID)
	})
}

func TestServiceQueries(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	t.Run("availability per kind", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := NewService(repo, &passthroughTxManager{}, nil)
		productID := id.New()

		repo.add(testHolder(productID, "PO-2026-00001", 10, 7, base))
		purchase := testHolder(productID, "PUR-2026-00001", 4, 4, base)
		purchase.Kind = KindPurchase
		repo.add(purchase)

		totals, err := svc.GetProductAvailability(ctx, productID)
		require.NoError(t, err)
		assert.Equal(t, int64(7), totals[KindPurchaseOrder])
		assert.Equal(t, int64(4), totals[KindPurchase])
	})

	t.Run("low stock filters by remaining share", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := NewService(repo, &passthroughTxManager{}, nil)

		lowProduct := id.New()
		okProduct := id.New()
		repo.add(testHolder(lowProduct, "PO-2026-00001", 100, 15, base))
		repo.add(testHolder(okProduct, "PO-2026-00002", 100, 60, base))

		low, err := svc.GetLowStock(ctx, 0) // default 20%
		require.NoError(t, err)

		require.Len(t, low, 1)
		assert.Equal(t, lowProduct, low[0].ProductID)
	})
}

func testHolder(productID id.ID, ref string, quantity, remaining int64, createdAt time.Time) *StockHolder {
	h := NewStockHolder(KindPurchaseOrder, id.New(), ref, productID, quantity)
	h.Remaining = remaining
	h.CreatedAt = createdAt
	return h
}
