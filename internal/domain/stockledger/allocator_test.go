package stockledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medtrack/internal/core/apperror"
	"medtrack/internal/core/id"
)

func holderAt(t *testing.T, productID id.ID, ref string, quantity, remaining int64, createdAt time.Time) *StockHolder {
	t.Helper()
	h := NewStockHolder(KindPurchaseOrder, id.New(), ref, productID, quantity)
	h.Remaining = remaining
	h.CreatedAt = createdAt
	require.NoError(t, h.CheckInvariant())
	return h
}

func TestDeduct(t *testing.T) {
	productID := id.New()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("consumes oldest holder first", func(t *testing.T) {
		old := holderAt(t, productID, "PO-2026-00001", 10, 10, base)
		young := holderAt(t, productID, "PO-2026-00002", 10, 10, base.Add(time.Hour))

		// Deliberately pass newest first; order must come from created_at.
		allocations, err := Deduct(productID, []*StockHolder{young, old}, 4)
		require.NoError(t, err)

		require.Len(t, allocations, 1)
		assert.Equal(t, old.ID, allocations[0].HolderID)
		assert.Equal(t, int64(4), allocations[0].Quantity)
		assert.Equal(t, int64(6), old.Remaining)
		assert.Equal(t, int64(10), young.Remaining)
	})

	t.Run("spans holders when the oldest runs out", func(t *testing.T) {
		first := holderAt(t, productID, "PO-2026-00001", 5, 3, base)
		second := holderAt(t, productID, "PO-2026-00002", 10, 10, base.Add(time.Hour))

		allocations, err := Deduct(productID, []*StockHolder{first, second}, 7)
		require.NoError(t, err)

		require.Len(t, allocations, 2)
		assert.Equal(t, int64(3), allocations[0].Quantity)
		assert.Equal(t, int64(4), allocations[1].Quantity)
		assert.Equal(t, int64(0), first.Remaining)
		assert.Equal(t, int64(6), second.Remaining)
	})

	t.Run("skips exhausted holders", func(t *testing.T) {
		drained := holderAt(t, productID, "PO-2026-00001", 5, 0, base)
		full := holderAt(t, productID, "PO-2026-00002", 5, 5, base.Add(time.Hour))

		allocations, err := Deduct(productID, []*StockHolder{drained, full}, 2)
		require.NoError(t, err)

		require.Len(t, allocations, 1)
		assert.Equal(t, full.ID, allocations[0].HolderID)
	})

	t.Run("conserves total stock", func(t *testing.T) {
		holders := []*StockHolder{
			holderAt(t, productID, "PO-2026-00001", 5, 3, base),
			holderAt(t, productID, "PO-2026-00002", 8, 8, base.Add(time.Hour)),
			holderAt(t, productID, "PO-2026-00003", 4, 4, base.Add(2*time.Hour)),
		}
		before := TotalRemaining(holders)

		allocations, err := Deduct(productID, holders, 9)
		require.NoError(t, err)

		allocated := int64(0)
		for _, a := range allocations {
			allocated += a.Quantity
		}
		assert.Equal(t, int64(9), allocated)
		assert.Equal(t, before-9, TotalRemaining(holders))
		for _, h := range holders {
			assert.NoError(t, h.CheckInvariant())
		}
	})

	t.Run("shortage mutates nothing", func(t *testing.T) {
		first := holderAt(t, productID, "PO-2026-00001", 5, 3, base)
		second := holderAt(t, productID, "PO-2026-00002", 5, 2, base.Add(time.Hour))

		_, err := Deduct(productID, []*StockHolder{first, second}, 6)
		require.Error(t, err)

		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
		assert.Contains(t, appErr.Message, "Required: 6")
		assert.Contains(t, appErr.Message, "Available: 5")

		assert.Equal(t, int64(3), first.Remaining)
		assert.Equal(t, int64(2), second.Remaining)
	})

	t.Run("no holders fails with zero available", func(t *testing.T) {
		_, err := Deduct(productID, nil, 1)
		require.Error(t, err)

		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
		assert.Contains(t, appErr.Message, "Available: 0")
	})

	t.Run("zero quantity is a no-op", func(t *testing.T) {
		h := holderAt(t, productID, "PO-2026-00001", 5, 5, base)

		allocations, err := Deduct(productID, []*StockHolder{h}, 0)
		require.NoError(t, err)
		assert.Empty(t, allocations)
		assert.Equal(t, int64(5), h.Remaining)
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		_, err := Deduct(productID, nil, -1)
		require.Error(t, err)

		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	})

	t.Run("foreign product holder rejected without mutation", func(t *testing.T) {
		mine := holderAt(t, productID, "PO-2026-00001", 5, 5, base)
		foreign := holderAt(t, id.New(), "PO-2026-00002", 5, 5, base.Add(time.Hour))

		_, err := Deduct(productID, []*StockHolder{mine, foreign}, 2)
		require.Error(t, err)

		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeProductMismatch, appErr.Code)
		assert.Equal(t, int64(5), mine.Remaining)
		assert.Equal(t, int64(5), foreign.Remaining)
	})

	t.Run("equal timestamps break ties on id", func(t *testing.T) {
		a := holderAt(t, productID, "PO-2026-00001", 5, 5, base)
		b := holderAt(t, productID, "PO-2026-00002", 5, 5, base)

		allocations, err := Deduct(productID, []*StockHolder{b, a}, 3)
		require.NoError(t, err)
		require.Len(t, allocations, 1)

		// UUIDv7 ids order by creation; a was made first.
		assert.Equal(t, a.ID, allocations[0].HolderID)
	})
}

func TestRestore(t *testing.T) {
	productID := id.New()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("refills newest holder first", func(t *testing.T) {
		old := holderAt(t, productID, "PO-2026-00001", 10, 4, base)
		young := holderAt(t, productID, "PO-2026-00002", 10, 7, base.Add(time.Hour))

		result, err := Restore(productID, []*StockHolder{old, young}, 3, false)
		require.NoError(t, err)

		require.Len(t, result.Refills, 1)
		assert.Equal(t, young.ID, result.Refills[0].HolderID)
		assert.Equal(t, int64(10), young.Remaining)
		assert.Equal(t, int64(4), old.Remaining)
		assert.Zero(t, result.Unrestored)
	})

	t.Run("overflows into older holders", func(t *testing.T) {
		old := holderAt(t, productID, "PO-2026-00001", 10, 4, base)
		young := holderAt(t, productID, "PO-2026-00002", 10, 7, base.Add(time.Hour))

		result, err := Restore(productID, []*StockHolder{old, young}, 5, false)
		require.NoError(t, err)

		require.Len(t, result.Refills, 2)
		assert.Equal(t, young.ID, result.Refills[0].HolderID)
		assert.Equal(t, int64(3), result.Refills[0].Quantity)
		assert.Equal(t, old.ID, result.Refills[1].HolderID)
		assert.Equal(t, int64(2), result.Refills[1].Quantity)
		assert.Equal(t, int64(10), young.Remaining)
		assert.Equal(t, int64(6), old.Remaining)
	})

	t.Run("never raises remaining above quantity", func(t *testing.T) {
		h := holderAt(t, productID, "PO-2026-00001", 10, 8, base)

		result, err := Restore(productID, []*StockHolder{h}, 100, false)
		require.NoError(t, err)

		assert.Equal(t, int64(10), h.Remaining)
		assert.Equal(t, int64(98), result.Unrestored)
		assert.NoError(t, h.CheckInvariant())
	})

	t.Run("lenient truncation round trips with deduct", func(t *testing.T) {
		holders := []*StockHolder{
			holderAt(t, productID, "PO-2026-00001", 6, 6, base),
			holderAt(t, productID, "PO-2026-00002", 4, 4, base.Add(time.Hour)),
		}

		_, err := Deduct(productID, holders, 7)
		require.NoError(t, err)

		result, err := Restore(productID, holders, 7, false)
		require.NoError(t, err)
		assert.Zero(t, result.Unrestored)
		assert.Equal(t, int64(6), holders[0].Remaining)
		assert.Equal(t, int64(4), holders[1].Remaining)
	})

	t.Run("strict mode rejects overflow without mutating", func(t *testing.T) {
		h := holderAt(t, productID, "PO-2026-00001", 10, 8, base)

		_, err := Restore(productID, []*StockHolder{h}, 5, true)
		require.Error(t, err)

		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeRestoreOverflow, appErr.Code)
		assert.Equal(t, int64(8), h.Remaining)
	})

	t.Run("strict mode passes at exact capacity", func(t *testing.T) {
		h := holderAt(t, productID, "PO-2026-00001", 10, 8, base)

		result, err := Restore(productID, []*StockHolder{h}, 2, true)
		require.NoError(t, err)
		assert.Zero(t, result.Unrestored)
		assert.Equal(t, int64(10), h.Remaining)
	})

	t.Run("foreign product holder rejected without mutation", func(t *testing.T) {
		foreign := holderAt(t, id.New(), "PO-2026-00001", 10, 4, base)

		_, err := Restore(productID, []*StockHolder{foreign}, 3, false)
		require.Error(t, err)

		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeProductMismatch, appErr.Code)
		assert.Equal(t, int64(4), foreign.Remaining)
	})

	t.Run("zero quantity is a no-op", func(t *testing.T) {
		h := holderAt(t, productID, "PO-2026-00001", 10, 5, base)

		result, err := Restore(productID, []*StockHolder{h}, 0, false)
		require.NoError(t, err)
		assert.Empty(t, result.Refills)
		assert.Equal(t, int64(5), h.Remaining)
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		_, err := Restore(productID, nil, -3, false)
		require.Error(t, err)
	})
}

func TestValidateAvailability(t *testing.T) {
	productID := id.New()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("reports available stock", func(t *testing.T) {
		holders := []*StockHolder{
			holderAt(t, productID, "PO-2026-00001", 5, 3, base),
			holderAt(t, productID, "PO-2026-00002", 5, 5, base.Add(time.Hour)),
		}

		ok, msg := ValidateAvailability(holders, 8)
		assert.True(t, ok)
		assert.Equal(t, "Stock available. Required: 8, Available: 8", msg)
	})

	t.Run("reports shortage", func(t *testing.T) {
		holders := []*StockHolder{holderAt(t, productID, "PO-2026-00001", 5, 2, base)}

		ok, msg := ValidateAvailability(holders, 3)
		assert.False(t, ok)
		assert.Equal(t, "Insufficient stock. Required: 3, Available: 2", msg)
	})

	t.Run("empty holders fail with zero available", func(t *testing.T) {
		ok, msg := ValidateAvailability(nil, 1)
		assert.False(t, ok)
		assert.Contains(t, msg, "Available: 0")
	})

	t.Run("repeated calls do not mutate", func(t *testing.T) {
		h := holderAt(t, productID, "PO-2026-00001", 5, 4, base)

		for i := 0; i < 3; i++ {
			ok, _ := ValidateAvailability([]*StockHolder{h}, 4)
			assert.True(t, ok)
		}
		assert.Equal(t, int64(4), h.Remaining)
	})
}

func TestStockHolderInvariant(t *testing.T) {
	h := NewStockHolder(KindPurchase, id.New(), "PUR-2026-00001", id.New(), 5)
	require.NoError(t, h.CheckInvariant())
	assert.True(t, h.IsUntouched())
	assert.Zero(t, h.Consumed())

	h.Remaining = 6
	assert.Error(t, h.CheckInvariant())

	h.Remaining = -1
	assert.Error(t, h.CheckInvariant())
}
