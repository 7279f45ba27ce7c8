// Package product provides the Product catalog.
// Products are the goods tracked by the stock ledger.
package product

import (
	"context"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/entity"
	"stockyard/internal/core/id"
)

// Product represents a tracked good.
type Product struct {
	entity.Catalog

	// SKU is an optional stock keeping unit code
	SKU *string `db:"sku" json:"sku,omitempty"`

	// Description is an optional free-form note
	Description *string `db:"description" json:"description,omitempty"`

	// CategoryID is reference to the owning category
	CategoryID id.ID `db:"category_id" json:"categoryId"`

	// Unit is the unit of measure (pcs, kg, box, ...)
	Unit string `db:"unit" json:"unit"`

	// MinStock is the reorder threshold used by low-stock reporting
	MinStock int64 `db:"min_stock" json:"minStock"`

	// Attributes holds product-specific custom fields (JSONB)
	Attributes entity.Attributes `db:"attributes" json:"attributes,omitempty"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(name string, categoryID id.ID, unit string) *Product {
	return &Product{
		Catalog:    entity.NewCatalog(name),
		CategoryID: categoryID,
		Unit:       unit,
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.CategoryID) {
		return apperror.NewValidation("category is required").
			WithDetail("field", "categoryId")
	}

	if p.MinStock < 0 {
		return apperror.NewValidation("minStock must not be negative").
			WithDetail("field", "minStock").
			WithDetail("value", p.MinStock)
	}

	return nil
}
