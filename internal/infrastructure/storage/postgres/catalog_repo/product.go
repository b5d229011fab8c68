package catalog_repo

import (
	"medtrack/internal/domain/catalogs/product"
	"medtrack/internal/infrastructure/storage/postgres"
)

const productTable = "products"

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

var _ product.Repository = (*ProductRepo)(nil)

// NewProductRepo creates a new product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			productTable,
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
	}
}
