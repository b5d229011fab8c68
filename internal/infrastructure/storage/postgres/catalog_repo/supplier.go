package catalog_repo

import (
	"medtrack/internal/domain/catalogs/supplier"
	"medtrack/internal/infrastructure/storage/postgres"
)

const supplierTable = "suppliers"

// SupplierRepo implements supplier.Repository.
type SupplierRepo struct {
	*BaseCatalogRepo[*supplier.Supplier]
}

var _ supplier.Repository = (*SupplierRepo)(nil)

// NewSupplierRepo creates a new supplier repository.
func NewSupplierRepo(txManager *postgres.TxManager) *SupplierRepo {
	return &SupplierRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			supplierTable,
			postgres.ExtractDBColumns[supplier.Supplier](),
			func() *supplier.Supplier { return &supplier.Supplier{} },
		),
	}
}
