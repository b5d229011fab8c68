package supplier

import (
	"medtrack/internal/domain"
)

// Repository defines the interface for Supplier persistence.
type Repository interface {
	domain.CatalogRepository[*Supplier]
}
