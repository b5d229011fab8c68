package transaction

import (
	"context"
	"fmt"
	"time"

	"medtrack/internal/core/id"
	"medtrack/internal/core/tx"
	"medtrack/internal/domain"
	"medtrack/internal/domain/posting"
	"medtrack/internal/domain/stockledger"
	"medtrack/pkg/logger"
	"medtrack/pkg/numerator"
)

// Service provides business operations for distribution transactions.
type Service struct {
	repo          Repository
	postingEngine *posting.Engine
	stock         *stockledger.Service
	numerator     numerator.Generator
	txManager     tx.Manager
}

// NewService creates a new transaction service.
func NewService(
	repo Repository,
	postingEngine *posting.Engine,
	stock *stockledger.Service,
	numerator numerator.Generator,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:          repo,
		postingEngine: postingEngine,
		stock:         stock,
		numerator:     numerator,
		txManager:     txManager,
	}
}

// Create creates a new transaction document.
func (s *Service) Create(ctx context.Context, doc *Transaction) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if doc.Number == "" {
		cfg := numerator.DefaultConfig(NumberPrefix)
		number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, time.Now())
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, doc)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "transaction created", "id", doc.ID, "number", doc.Number)
	return nil
}

// GetByID retrieves a transaction.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Transaction, error) {
	return s.repo.GetByID(ctx, docID)
}

// Update updates a transaction document. Posted documents must be
// unposted first.
func (s *Service) Update(ctx context.Context, doc *Transaction) error {
	if err := doc.CanModify(); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	})
}

// Delete soft-deletes an unposted transaction.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if doc.Posted {
		return doc.CanModify()
	}

	return s.repo.Delete(ctx, docID)
}

// CheckAvailability reports whether the transaction's quantity could be
// deducted right now. Advisory only: posting re-checks under lock.
func (s *Service) CheckAvailability(ctx context.Context, doc *Transaction) (stockledger.AvailabilityCheck, error) {
	source := doc.Source
	if source == "" {
		source = stockledger.KindPurchaseOrder
	}
	return s.stock.ValidateAvailability(ctx, source, doc.ProductID, doc.Quantity)
}

// Post deducts the transaction's quantity FIFO from the source holders.
func (s *Service) Post(ctx context.Context, docID id.ID) error {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	updateDoc := func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	}

	return s.postingEngine.Post(ctx, doc, updateDoc)
}

// Unpost restores the transaction's quantity reverse-FIFO (lenient).
func (s *Service) Unpost(ctx context.Context, docID id.ID) error {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	updateDoc := func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	}

	return s.postingEngine.Unpost(ctx, doc, updateDoc)
}

// List retrieves transactions with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Transaction], error) {
	return s.repo.List(ctx, filter)
}
