package dto

import (
	"time"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/entity"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/catalogs/product"
)

// --- Request DTOs ---

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Name        string            `json:"name" binding:"required"`
	SKU         *string           `json:"sku"`
	Description *string           `json:"description"`
	CategoryID  string            `json:"categoryId" binding:"required"`
	Unit        string            `json:"unit" binding:"required"`
	MinStock    int64             `json:"minStock" binding:"omitempty,min=0"`
	Attributes  entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() (*product.Product, error) {
	categoryID, err := id.Parse(r.CategoryID)
	if err != nil {
		return nil, apperror.NewValidation("invalid category id").WithDetail("categoryId", r.CategoryID)
	}
	p := product.NewProduct(r.Name, categoryID, r.Unit)
	p.SKU = r.SKU
	p.Description = r.Description
	p.MinStock = r.MinStock
	p.Attributes = r.Attributes
	return p, nil
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	Name        string            `json:"name" binding:"required"`
	SKU         *string           `json:"sku"`
	Description *string           `json:"description"`
	CategoryID  string            `json:"categoryId" binding:"required"`
	Unit        string            `json:"unit" binding:"required"`
	MinStock    int64             `json:"minStock" binding:"omitempty,min=0"`
	Attributes  entity.Attributes `json:"attributes"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) error {
	categoryID, err := id.Parse(r.CategoryID)
	if err != nil {
		return apperror.NewValidation("invalid category id").WithDetail("categoryId", r.CategoryID)
	}
	p.Name = r.Name
	p.SKU = r.SKU
	p.Description = r.Description
	p.CategoryID = categoryID
	p.Unit = r.Unit
	p.MinStock = r.MinStock
	p.Attributes = r.Attributes
	return nil
}

// --- Response DTOs ---

// ProductResponse is the response body for a product.
type ProductResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	SKU         *string           `json:"sku,omitempty"`
	Description *string           `json:"description,omitempty"`
	CategoryID  string            `json:"categoryId"`
	Unit        string            `json:"unit"`
	MinStock    int64             `json:"minStock"`
	Attributes  entity.Attributes `json:"attributes,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// FromProduct creates response DTO from domain entity.
func FromProduct(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.Description,
		CategoryID:  p.CategoryID.String(),
		Unit:        p.Unit,
		MinStock:    p.MinStock,
		Attributes:  p.Attributes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// FromProducts converts a slice of entities.
func FromProducts(items []*product.Product) []*ProductResponse {
	res := make([]*ProductResponse, 0, len(items))
	for _, p := range items {
		res = append(res, FromProduct(p))
	}
	return res
}
