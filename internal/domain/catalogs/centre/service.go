package centre

import (
	"context"

	"medtrack/internal/core/apperror"
	"medtrack/internal/core/tx"
	"medtrack/internal/domain"
)

// Service provides business logic for the MedicalCentre catalog.
type Service struct {
	*domain.CatalogService[*Centre]
	repo Repository
}

// NewService creates a new Centre service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Centre]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "medical centre",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkReferenceUnique)

	return svc
}

func (s *Service) checkReferenceUnique(ctx context.Context, item *Centre) error {
	exists, err := s.repo.ExistsByReference(ctx, item.Reference)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("medical centre", "reference", item.Reference)
	}
	return nil
}
