package transaction

import "medtrack/pkg/numerator"

const (
	// NumberPrefix for generated document numbers (TRX-2026-00001).
	NumberPrefix = "TRX"

	// NumeratorStrategy defines the numbering strategy for this document
	// type. Transaction numbers appear on printed delivery notes, so
	// they must be gapless.
	NumeratorStrategy = numerator.StrategyStrict
)
