package reports

import (
	"context"
	"time"

	"medtrack/internal/core/apperror"
	"medtrack/internal/core/id"
	"medtrack/internal/domain/catalogs/location"
	"medtrack/internal/domain/catalogs/product"
	"medtrack/internal/domain/documents/transaction"
	"medtrack/internal/domain/stockledger"
)

// Service builds stock reports and delivery-note data.
type Service struct {
	stock        *stockledger.Service
	transactions transaction.Repository
	products     product.Repository
	locations    location.Repository
}

// NewService creates a new reports service.
func NewService(
	stock *stockledger.Service,
	transactions transaction.Repository,
	products product.Repository,
	locations location.Repository,
) *Service {
	return &Service{
		stock:        stock,
		transactions: transactions,
		products:     products,
		locations:    locations,
	}
}

// StockReport builds the per-product summary with the low-stock section.
// thresholdPercent <= 0 falls back to the 20% default.
func (s *Service) StockReport(ctx context.Context, thresholdPercent float64) (*StockReport, error) {
	if thresholdPercent <= 0 {
		thresholdPercent = 20
	}

	summary, err := s.stock.GetStockSummary(ctx)
	if err != nil {
		return nil, err
	}

	low := make([]stockledger.ProductSummary, 0)
	for _, row := range summary {
		if row.TotalOrdered == 0 {
			continue
		}
		remainingPercent := float64(row.TotalRemaining) / float64(row.TotalOrdered) * 100
		if remainingPercent <= thresholdPercent {
			low = append(low, row)
		}
	}

	return &StockReport{
		GeneratedAt:      time.Now().UTC(),
		ThresholdPercent: thresholdPercent,
		Products:         summary,
		LowStock:         low,
	}, nil
}

// DeliveryNote assembles printable data for a posted transaction.
func (s *Service) DeliveryNote(ctx context.Context, transactionID id.ID) (*DeliveryNote, error) {
	trx, err := s.transactions.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if !trx.Posted {
		return nil, apperror.NewBusinessRule(
			apperror.CodeDocumentNotPosted,
			"Delivery note is only available for posted transactions",
		).WithDetail("transaction_id", transactionID.String())
	}

	prod, err := s.products.GetByID(ctx, trx.ProductID)
	if err != nil {
		return nil, err
	}

	loc, err := s.locations.GetByID(ctx, trx.LocationID)
	if err != nil {
		return nil, err
	}

	note := &DeliveryNote{
		Number:           trx.Number,
		Reference:        prod.Reference,
		Date:             trx.Date,
		LocationName:     loc.Name,
		ProductReference: prod.Reference,
		ProductName:      prod.Name,
		Quantity:         trx.Quantity,
		Comment:          trx.Comment,
	}

	if loc.Address != nil {
		note.LocationAddress = *loc.Address
	}
	if loc.ContactPerson != nil {
		note.ContactPerson = *loc.ContactPerson
	}
	if prod.Description != nil {
		note.ProductDescription = *prod.Description
	}

	return note, nil
}
