package purchase_order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medtrack/internal/core/id"
	"medtrack/internal/core/types"
)

func TestRecalculateTotals(t *testing.T) {
	po := NewPurchaseOrder(id.New(), 100)
	po.UnitPrice = types.MustMoney("1.250")
	po.TaxRate = types.MustMoney("10")
	po.RecalculateTotals()

	assert.True(t, po.TotalWithoutTax.Equal(types.MustMoney("125.000")),
		"net = %s", po.TotalWithoutTax)
	assert.True(t, po.TaxAmount.Equal(types.MustMoney("12.500")),
		"tax = %s", po.TaxAmount)
	assert.True(t, po.TotalWithTax.Equal(types.MustMoney("137.500")),
		"total = %s", po.TotalWithTax)
}

func TestRecalculateTotalsRoundsToFils(t *testing.T) {
	po := NewPurchaseOrder(id.New(), 3)
	po.UnitPrice = types.MustMoney("0.3335")
	po.TaxRate = types.MustMoney("5")
	po.RecalculateTotals()

	// 3 * 0.3335 = 1.0005 -> 1.001 (banker-free half-up at fils)
	assert.True(t, po.TotalWithoutTax.Equal(types.MustMoney("1.001")),
		"net = %s", po.TotalWithoutTax)
}

func TestRecalculateTotalsWithoutPricing(t *testing.T) {
	po := NewPurchaseOrder(id.New(), 50)

	assert.True(t, po.TotalWithoutTax.IsZero())
	assert.True(t, po.TaxAmount.IsZero())
	assert.True(t, po.TotalWithTax.IsZero())
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		po := NewPurchaseOrder(id.New(), 10)
		require.NoError(t, po.Validate(ctx))
	})

	t.Run("missing product", func(t *testing.T) {
		po := NewPurchaseOrder(id.Nil(), 10)
		require.Error(t, po.Validate(ctx))
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		po := NewPurchaseOrder(id.New(), 0)
		require.Error(t, po.Validate(ctx))
	})

	t.Run("negative unit price", func(t *testing.T) {
		po := NewPurchaseOrder(id.New(), 10)
		po.UnitPrice = types.MustMoney("-1")
		require.Error(t, po.Validate(ctx))
	})
}

func TestStockEffect(t *testing.T) {
	po := NewPurchaseOrder(id.New(), 40)

	effect, err := po.StockEffect(context.Background())
	require.NoError(t, err)

	require.NotNil(t, effect.Intake)
	assert.Nil(t, effect.Outflow)
	assert.Equal(t, po.ProductID, effect.Intake.ProductID)
	assert.Equal(t, int64(40), effect.Intake.Quantity)
}
