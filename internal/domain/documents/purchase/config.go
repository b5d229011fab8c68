package purchase

import "medtrack/pkg/numerator"

const (
	// NumberPrefix for generated document numbers (PUR-2026-00001).
	NumberPrefix = "PUR"

	// NumeratorStrategy defines the numbering strategy for this document
	// type. Purchases mirror supplier invoices, so numbers must be gapless.
	NumeratorStrategy = numerator.StrategyStrict
)
