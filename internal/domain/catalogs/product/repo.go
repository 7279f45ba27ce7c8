package product

import (
	"context"

	"stockyard/internal/core/id"
	"stockyard/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// ListByCategory retrieves products belonging to a category.
	ListByCategory(ctx context.Context, categoryID id.ID) ([]*Product, error)
}
