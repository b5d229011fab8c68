package product

import (
	"context"

	"medtrack/internal/core/apperror"
	"medtrack/internal/core/id"
	"medtrack/internal/core/tx"
	"medtrack/internal/domain"
)

// StockChecker reports whether a product's stock has been distributed.
// Implemented by the stock ledger service.
type StockChecker interface {
	HasConsumedStock(ctx context.Context, productID id.ID) (bool, error)
}

// Service provides business logic for the Product catalog.
type Service struct {
	*domain.CatalogService[*Product]
	repo  Repository
	stock StockChecker
}

// NewService creates a new Product service.
func NewService(repo Repository, txManager tx.Manager, stock StockChecker) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		stock:          stock,
	}

	base.Hooks().OnBeforeCreate(svc.checkReferenceUnique)
	base.Hooks().OnBeforeDelete(svc.checkNotUsed)

	return svc
}

// checkReferenceUnique rejects duplicate reference codes.
func (s *Service) checkReferenceUnique(ctx context.Context, item *Product) error {
	exists, err := s.repo.ExistsByReference(ctx, item.Reference)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("product", "reference", item.Reference)
	}
	return nil
}

// checkNotUsed blocks deletion while any of the product's stock has
// been distributed. Untouched holders do not block: unposting the
// documents first releases them.
func (s *Service) checkNotUsed(ctx context.Context, item *Product) error {
	if s.stock == nil {
		return nil
	}

	used, err := s.stock.HasConsumedStock(ctx, item.ID)
	if err != nil {
		return err
	}
	if used {
		return apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"Cannot delete product with distributed stock",
		).WithDetail("product_id", item.ID.String())
	}
	return nil
}
