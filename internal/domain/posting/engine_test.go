package posting

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medtrack/internal/core/apperror"
	"medtrack/internal/core/id"
	"medtrack/internal/domain/stockledger"
)

type passthroughTxManager struct {
	calls int
}

func (m *passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

// ledgerRepo is an in-memory stockledger.Repository for engine tests.
type ledgerRepo struct {
	holders map[id.ID]*stockledger.StockHolder
	updated []id.ID
}

func newLedgerRepo() *ledgerRepo {
	return &ledgerRepo{holders: make(map[id.ID]*stockledger.StockHolder)}
}

func (r *ledgerRepo) add(h *stockledger.StockHolder) *stockledger.StockHolder {
	r.holders[h.ID] = h
	return h
}

func (r *ledgerRepo) CreateHolder(_ context.Context, holder *stockledger.StockHolder) error {
	r.holders[holder.ID] = holder
	return nil
}

func (r *ledgerRepo) DeleteHolder(_ context.Context, holderID id.ID) error {
	delete(r.holders, holderID)
	return nil
}

func (r *ledgerRepo) GetByDocument(_ context.Context, documentID id.ID) (*stockledger.StockHolder, error) {
	for _, h := range r.holders {
		if h.DocumentID == documentID {
			return h, nil
		}
	}
	return nil, apperror.NewNotFound("stock holder", documentID)
}

func (r *ledgerRepo) GetByDocumentForUpdate(ctx context.Context, documentID id.ID) (*stockledger.StockHolder, error) {
	return r.GetByDocument(ctx, documentID)
}

func (r *ledgerRepo) GetByProduct(_ context.Context, productID id.ID, kind stockledger.HolderKind) ([]*stockledger.StockHolder, error) {
	var out []*stockledger.StockHolder
	for _, h := range r.holders {
		if h.ProductID == productID && h.Kind == kind {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ledgerRepo) GetByProductForUpdate(ctx context.Context, productID id.ID, kind stockledger.HolderKind) ([]*stockledger.StockHolder, error) {
	return r.GetByProduct(ctx, productID, kind)
}

func (r *ledgerRepo) UpdateRemaining(_ context.Context, holders []*stockledger.StockHolder) error {
	for _, h := range holders {
		r.updated = append(r.updated, h.ID)
	}
	return nil
}

func (r *ledgerRepo) GetTotalRemaining(_ context.Context, productID id.ID, kind stockledger.HolderKind) (int64, error) {
	total := int64(0)
	for _, h := range r.holders {
		if h.ProductID == productID && h.Kind == kind {
			total += h.Remaining
		}
	}
	return total, nil
}

func (r *ledgerRepo) HasConsumedStock(_ context.Context, productID id.ID) (bool, error) {
	for _, h := range r.holders {
		if h.ProductID == productID && !h.IsUntouched() {
			return true, nil
		}
	}
	return false, nil
}

func (r *ledgerRepo) GetSummary(_ context.Context) ([]stockledger.ProductSummary, error) {
	return nil, nil
}

// fakeDoc is a minimal Postable.
type fakeDoc struct {
	id         id.ID
	number     string
	posted     bool
	canPostErr error
	effect     Effect
}

func (d *fakeDoc) GetID() id.ID                        { return d.id }
func (d *fakeDoc) GetNumber() string                   { return d.number }
func (d *fakeDoc) GetDocumentType() string             { return "fake_documents" }
func (d *fakeDoc) IsPosted() bool                      { return d.posted }
func (d *fakeDoc) CanPost(context.Context) error       { return d.canPostErr }
func (d *fakeDoc) MarkPosted()                         { d.posted = true }
func (d *fakeDoc) MarkUnposted()                       { d.posted = false }
func (d *fakeDoc) StockEffect(context.Context) (Effect, error) { return d.effect, nil }

func noopSave(context.Context) error { return nil }

func newEngineWithRepo() (*Engine, *ledgerRepo) {
	repo := newLedgerRepo()
	txm := &passthroughTxManager{}
	stock := stockledger.NewService(repo, txm, nil)
	return NewEngine(stock, txm, nil), repo
}

func intakeHolder(productID id.ID, number string, quantity, remaining int64, createdAt time.Time) *stockledger.StockHolder {
	h := stockledger.NewStockHolder(stockledger.KindPurchaseOrder, id.New(), number, productID, quantity)
	h.Remaining = remaining
	h.CreatedAt = createdAt
	return h
}

func TestEnginePost(t *testing.T) {
	ctx := context.Background()
	productID := id.New()
	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	t.Run("intake opens a full holder", func(t *testing.T) {
		engine, repo := newEngineWithRepo()
		doc := &fakeDoc{id: id.New(), number: "PO-2026-00001", effect: Effect{
			Intake: &Intake{Kind: stockledger.KindPurchaseOrder, ProductID: productID, Quantity: 200},
		}}

		require.NoError(t, engine.Post(ctx, doc, noopSave))
		assert.True(t, doc.posted)

		holder, err := repo.GetByDocument(ctx, doc.id)
		require.NoError(t, err)
		assert.Equal(t, int64(200), holder.Quantity)
		assert.Equal(t, int64(200), holder.Remaining)
		assert.Equal(t, doc.number, holder.Reference)
	})

	t.Run("outflow deducts oldest holders first", func(t *testing.T) {
		engine, repo := newEngineWithRepo()
		first := repo.add(intakeHolder(productID, "PO-2026-00001", 50, 50, base))
		second := repo.add(intakeHolder(productID, "PO-2026-00002", 50, 50, base.Add(time.Hour)))

		doc := &fakeDoc{id: id.New(), number: "TRX-2026-00001", effect: Effect{
			Outflow: &Outflow{Kind: stockledger.KindPurchaseOrder, ProductID: productID, Quantity: 60},
		}}

		require.NoError(t, engine.Post(ctx, doc, noopSave))
		assert.Equal(t, int64(0), first.Remaining)
		assert.Equal(t, int64(40), second.Remaining)
	})

	t.Run("shortage leaves the document unposted", func(t *testing.T) {
		engine, repo := newEngineWithRepo()
		repo.add(intakeHolder(productID, "PO-2026-00001", 50, 10, base))

		doc := &fakeDoc{id: id.New(), number: "TRX-2026-00001", effect: Effect{
			Outflow: &Outflow{Kind: stockledger.KindPurchaseOrder, ProductID: productID, Quantity: 60},
		}}

		err := engine.Post(ctx, doc, noopSave)
		require.Error(t, err)
		assert.True(t, apperror.IsInsufficientStock(err))
		assert.False(t, doc.posted)
	})

	t.Run("already posted is rejected", func(t *testing.T) {
		engine, _ := newEngineWithRepo()
		doc := &fakeDoc{id: id.New(), number: "PO-2026-00001", posted: true}

		err := engine.Post(ctx, doc, noopSave)
		require.Error(t, err)

		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeDocumentPosted, appErr.Code)
	})

	t.Run("can-post failure blocks the ledger", func(t *testing.T) {
		engine, repo := newEngineWithRepo()
		doc := &fakeDoc{
			id:         id.New(),
			number:     "PO-2026-00001",
			canPostErr: apperror.NewValidation("quantity must be positive"),
			effect: Effect{
				Intake: &Intake{Kind: stockledger.KindPurchaseOrder, ProductID: productID, Quantity: 10},
			},
		}

		require.Error(t, engine.Post(ctx, doc, noopSave))
		assert.Empty(t, repo.holders)
	})

	t.Run("save failure reverts the posted mark", func(t *testing.T) {
		engine, _ := newEngineWithRepo()
		doc := &fakeDoc{id: id.New(), number: "PO-2026-00001", effect: Effect{
			Intake: &Intake{Kind: stockledger.KindPurchaseOrder, ProductID: productID, Quantity: 10},
		}}

		saveErr := errors.New("connection reset")
		err := engine.Post(ctx, doc, func(context.Context) error { return saveErr })
		require.ErrorIs(t, err, saveErr)
		assert.False(t, doc.posted)
	})
}

func TestEngineUnpost(t *testing.T) {
	ctx := context.Background()
	productID := id.New()
	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	t.Run("intake reversal removes untouched holder", func(t *testing.T) {
		engine, repo := newEngineWithRepo()
		doc := &fakeDoc{id: id.New(), number: "PO-2026-00001", posted: true, effect: Effect{
			Intake: &Intake{Kind: stockledger.KindPurchaseOrder, ProductID: productID, Quantity: 80},
		}}

		h := intakeHolder(productID, doc.number, 80, 80, base)
		h.DocumentID = doc.id
		repo.add(h)

		require.NoError(t, engine.Unpost(ctx, doc, noopSave))
		assert.False(t, doc.posted)
		assert.Empty(t, repo.holders)
	})

	t.Run("intake reversal refuses consumed holder", func(t *testing.T) {
		engine, repo := newEngineWithRepo()
		doc := &fakeDoc{id: id.New(), number: "PO-2026-00001", posted: true, effect: Effect{
			Intake: &Intake{Kind: stockledger.KindPurchaseOrder, ProductID: productID, Quantity: 80},
		}}

		h := intakeHolder(productID, doc.number, 80, 30, base)
		h.DocumentID = doc.id
		repo.add(h)

		err := engine.Unpost(ctx, doc, noopSave)
		require.Error(t, err)

		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeDocumentInUse, appErr.Code)
		assert.True(t, doc.posted)
	})

	t.Run("outflow reversal restores newest first leniently", func(t *testing.T) {
		engine, repo := newEngineWithRepo()
		older := repo.add(intakeHolder(productID, "PO-2026-00001", 50, 20, base))
		newer := repo.add(intakeHolder(productID, "PO-2026-00002", 50, 45, base.Add(time.Hour)))

		doc := &fakeDoc{id: id.New(), number: "TRX-2026-00001", posted: true, effect: Effect{
			Outflow: &Outflow{Kind: stockledger.KindPurchaseOrder, ProductID: productID, Quantity: 10},
		}}

		require.NoError(t, engine.Unpost(ctx, doc, noopSave))
		assert.False(t, doc.posted)
		assert.Equal(t, int64(50), newer.Remaining)
		assert.Equal(t, int64(25), older.Remaining)
	})

	t.Run("not posted is rejected", func(t *testing.T) {
		engine, _ := newEngineWithRepo()
		doc := &fakeDoc{id: id.New(), number: "PO-2026-00001"}

		err := engine.Unpost(ctx, doc, noopSave)
		require.Error(t, err)

		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeDocumentNotPosted, appErr.Code)
	})
}
