package location

import (
	"context"

	"medtrack/internal/core/apperror"
	"medtrack/internal/core/tx"
	"medtrack/internal/domain"
)

// Service provides business logic for the Location catalog.
type Service struct {
	*domain.CatalogService[*Location]
	repo Repository
}

// NewService creates a new Location service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Location]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "location",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkReferenceUnique)

	return svc
}

func (s *Service) checkReferenceUnique(ctx context.Context, item *Location) error {
	exists, err := s.repo.ExistsByReference(ctx, item.Reference)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("location", "reference", item.Reference)
	}
	return nil
}
