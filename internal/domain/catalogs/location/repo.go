package location

import (
	"medtrack/internal/domain"
)

// Repository defines the interface for Location persistence.
type Repository interface {
	domain.CatalogRepository[*Location]
}
