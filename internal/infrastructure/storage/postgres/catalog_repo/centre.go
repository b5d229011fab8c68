package catalog_repo

import (
	"medtrack/internal/domain/catalogs/centre"
	"medtrack/internal/infrastructure/storage/postgres"
)

const centreTable = "medical_centres"

// CentreRepo implements centre.Repository.
type CentreRepo struct {
	*BaseCatalogRepo[*centre.Centre]
}

var _ centre.Repository = (*CentreRepo)(nil)

// NewCentreRepo creates a new medical centre repository.
func NewCentreRepo(txManager *postgres.TxManager) *CentreRepo {
	return &CentreRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			centreTable,
			postgres.ExtractDBColumns[centre.Centre](),
			func() *centre.Centre { return &centre.Centre{} },
		),
	}
}
