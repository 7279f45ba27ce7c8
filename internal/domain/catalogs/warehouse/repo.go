package warehouse

import (
	"context"

	"stockyard/internal/domain"
)

// Repository defines the interface for Warehouse persistence.
type Repository interface {
	domain.CatalogRepository[*Warehouse]

	// ExistsByName checks if a warehouse with the given name exists.
	// Warehouse names are unique.
	ExistsByName(ctx context.Context, name string) (bool, error)
}
