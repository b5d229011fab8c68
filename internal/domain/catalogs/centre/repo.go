package centre

import (
	"medtrack/internal/domain"
)

// Repository defines the interface for Centre persistence.
type Repository interface {
	domain.CatalogRepository[*Centre]
}
