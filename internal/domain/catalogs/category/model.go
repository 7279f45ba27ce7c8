// Package category provides the product category catalog.
package category

import (
	"stockyard/internal/core/entity"
)

// Category groups products for navigation and reporting.
type Category struct {
	entity.Catalog

	// Description is an optional free-form note
	Description *string `db:"description" json:"description,omitempty"`
}

// NewCategory creates a new Category with required fields.
func NewCategory(name string) *Category {
	return &Category{
		Catalog: entity.NewCatalog(name),
	}
}
