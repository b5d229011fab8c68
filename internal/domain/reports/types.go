// Package reports assembles read models for stock reports and printed
// delivery notes.
package reports

import (
	"time"

	"medtrack/internal/domain/stockledger"
)

// DeliveryNote is the data printed on a transaction's delivery note.
type DeliveryNote struct {
	Number    string    `json:"number"`
	Reference string    `json:"reference"`
	Date      time.Time `json:"date"`

	LocationName    string `json:"locationName"`
	LocationAddress string `json:"locationAddress,omitempty"`
	ContactPerson   string `json:"contactPerson,omitempty"`

	ProductReference   string `json:"productReference"`
	ProductName        string `json:"productName"`
	ProductDescription string `json:"productDescription,omitempty"`

	Quantity int64  `json:"quantity"`
	Comment  string `json:"comment,omitempty"`
}

// StockReport is the per-product summary with a derived low-stock section.
type StockReport struct {
	GeneratedAt      time.Time                    `json:"generatedAt"`
	ThresholdPercent float64                      `json:"thresholdPercent"`
	Products         []stockledger.ProductSummary `json:"products"`
	LowStock         []stockledger.ProductSummary `json:"lowStock"`
}
