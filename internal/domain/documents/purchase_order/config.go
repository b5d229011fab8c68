package purchase_order

import "medtrack/pkg/numerator"

const (
	// NumberPrefix for generated document numbers (PO-2026-00001).
	NumberPrefix = "PO"

	// NumeratorStrategy defines the numbering strategy for this document
	// type. Purchase orders go to the Ministry on paper, so numbers must
	// be gapless.
	NumeratorStrategy = numerator.StrategyStrict
)
