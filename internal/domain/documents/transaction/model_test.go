package transaction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medtrack/internal/core/id"
	"medtrack/internal/domain/stockledger"
)

func TestTransactionValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid with default source", func(t *testing.T) {
		trx := NewTransaction(id.New(), id.New(), 5)
		require.NoError(t, trx.Validate(ctx))
		assert.Equal(t, stockledger.KindPurchaseOrder, trx.Source)
	})

	t.Run("empty source defaults to purchase orders", func(t *testing.T) {
		trx := NewTransaction(id.New(), id.New(), 5)
		trx.Source = ""
		require.NoError(t, trx.Validate(ctx))
		assert.Equal(t, stockledger.KindPurchaseOrder, trx.Source)
	})

	t.Run("invalid source rejected", func(t *testing.T) {
		trx := NewTransaction(id.New(), id.New(), 5)
		trx.Source = "warehouse"
		require.Error(t, trx.Validate(ctx))
	})

	t.Run("missing product", func(t *testing.T) {
		trx := NewTransaction(id.Nil(), id.New(), 5)
		require.Error(t, trx.Validate(ctx))
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		trx := NewTransaction(id.New(), id.New(), -1)
		require.Error(t, trx.Validate(ctx))
	})
}

func TestTransactionStockEffect(t *testing.T) {
	trx := NewTransaction(id.New(), id.New(), 12)
	trx.Source = stockledger.KindPurchase

	effect, err := trx.StockEffect(context.Background())
	require.NoError(t, err)

	require.NotNil(t, effect.Outflow)
	assert.Nil(t, effect.Intake)
	assert.Equal(t, stockledger.KindPurchase, effect.Outflow.Kind)
	assert.Equal(t, int64(12), effect.Outflow.Quantity)
}
