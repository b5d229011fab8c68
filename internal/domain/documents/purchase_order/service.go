package purchase_order

import (
	"context"
	"fmt"
	"time"

	"medtrack/internal/core/id"
	"medtrack/internal/core/tx"
	"medtrack/internal/domain"
	"medtrack/internal/domain/posting"
	"medtrack/pkg/logger"
	"medtrack/pkg/numerator"
)

// Service provides business operations for purchase order documents.
type Service struct {
	repo          Repository
	postingEngine *posting.Engine
	numerator     numerator.Generator
	txManager     tx.Manager
}

// NewService creates a new purchase order service.
func NewService(
	repo Repository,
	postingEngine *posting.Engine,
	numerator numerator.Generator,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:          repo,
		postingEngine: postingEngine,
		numerator:     numerator,
		txManager:     txManager,
	}
}

// Create creates a new purchase order document.
func (s *Service) Create(ctx context.Context, doc *PurchaseOrder) error {
	doc.RecalculateTotals()
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

	logger.Info(ctx, "purchase order created", "id", doc.ID, "number", doc.Number)
	return nil
}

// GetByID retrieves a purchase order.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*PurchaseOrder, error) {
	return s.repo.GetByID(ctx, docID)
}

// Update updates a purchase order document. Posted documents must be
// unposted first.
func (s *Service) Update(ctx context.Context, doc *PurchaseOrder) error {
	if err := doc.CanModify(); err != nil {
		return err
	}

	doc.RecalculateTotals()
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	})
}

// Delete soft-deletes an unposted purchase order.
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

// Post opens the stock holder for this order.
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

// Unpost closes the stock holder. Fails with DOCUMENT_IN_USE once any
// of the order's stock has been distributed.
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

// List retrieves purchase orders with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*PurchaseOrder], error) {
	return s.repo.List(ctx, filter)
}
