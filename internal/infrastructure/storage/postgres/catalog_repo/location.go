package catalog_repo

import (
	"medtrack/internal/domain/catalogs/location"
	"medtrack/internal/infrastructure/storage/postgres"
)

const locationTable = "locations"

// LocationRepo implements location.Repository.
type LocationRepo struct {
	*BaseCatalogRepo[*location.Location]
}

var _ location.Repository = (*LocationRepo)(nil)

// NewLocationRepo creates a new location repository.
func NewLocationRepo(txManager *postgres.TxManager) *LocationRepo {
	return &LocationRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			locationTable,
			postgres.ExtractDBColumns[location.Location](),
			func() *location.Location { return &location.Location{} },
		),
	}
}
