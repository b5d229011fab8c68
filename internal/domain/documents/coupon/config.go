package coupon

import "medtrack/pkg/numerator"

const (
	// NumberPrefix for generated coupon numbers (CPN-2026-00001).
	NumberPrefix = "CPN"

	// NumeratorStrategy defines the numbering strategy. Coupons are
	// created in bulk and gaps are acceptable, so the cached strategy
	// keeps bulk creation off the sequence hot path.
	NumeratorStrategy = numerator.StrategyCached
)
