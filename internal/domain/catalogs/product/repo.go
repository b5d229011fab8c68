package product

import (
	"medtrack/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]
}
