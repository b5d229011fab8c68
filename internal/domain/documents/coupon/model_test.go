package coupon

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medtrack/internal/core/id"
)

func TestNormalizeCPR(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"870123456", "870123456"},
		{" 870123456 ", "870123456"},
		{"87-0123-456", "870123456"},
		{"87 01 23 456", "870123456"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeCPR(tc.in))
	}
}

func TestSetCPR(t *testing.T) {
	c := NewCoupon(id.New(), id.New(), 2)

	c.SetCPR("87-0123-456")
	require.NotNil(t, c.CPR)
	assert.Equal(t, "870123456", *c.CPR)

	c.SetCPR("   ")
	assert.Nil(t, c.CPR)
}

func TestCouponValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		c := NewCoupon(id.New(), id.New(), 1)
		require.NoError(t, c.Validate(ctx))
	})

	t.Run("missing centre", func(t *testing.T) {
		c := NewCoupon(id.Nil(), id.New(), 1)
		require.Error(t, c.Validate(ctx))
	})

	t.Run("missing location", func(t *testing.T) {
		c := NewCoupon(id.New(), id.Nil(), 1)
		require.Error(t, c.Validate(ctx))
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		c := NewCoupon(id.New(), id.New(), 0)
		require.Error(t, c.Validate(ctx))
	})
}

func TestVerifyLifecycle(t *testing.T) {
	c := NewCoupon(id.New(), id.New(), 1)

	require.NoError(t, c.MarkVerified("pharmacist"))
	assert.True(t, c.Verified)
	require.NotNil(t, c.VerifiedAt)
	require.NotNil(t, c.VerifiedBy)
	assert.Equal(t, "pharmacist", *c.VerifiedBy)

	// Double verification is a conflict.
	require.Error(t, c.MarkVerified("someone else"))

	require.NoError(t, c.MarkUnverified())
	assert.False(t, c.Verified)
	assert.Nil(t, c.VerifiedAt)
	assert.Nil(t, c.VerifiedBy)

	require.Error(t, c.MarkUnverified())
}
