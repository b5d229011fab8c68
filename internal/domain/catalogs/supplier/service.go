package supplier

import (
	"context"

	"medtrack/internal/core/apperror"
	"medtrack/internal/core/tx"
	"medtrack/internal/domain"
)

// Service provides business logic for the Supplier catalog.
type Service struct {
	*domain.CatalogService[*Supplier]
	repo Repository
}

// NewService creates a new Supplier service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Supplier]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "supplier",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkReferenceUnique)

	return svc
}

func (s *Service) checkReferenceUnique(ctx context.Context, item *Supplier) error {
	exists, err := s.repo.ExistsByReference(ctx, item.Reference)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("supplier", "reference", item.Reference)
	}
	return nil
}
