package dto

import (
	"time"

	"stockyard/internal/domain/catalogs/category"
)

// --- Request DTOs ---

// CreateCategoryRequest is the request body for creating a category.
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCategoryRequest) ToEntity() *category.Category {
	cat := category.NewCategory(r.Name)
	cat.Description = r.Description
	return cat
}

// UpdateCategoryRequest is the request body for updating a category.
type UpdateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateCategoryRequest) ApplyTo(cat *category.Category) {
	cat.Name = r.Name
	cat.Description = r.Description
}

// --- Response DTOs ---

// CategoryResponse is the response body for a category.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FromCategory creates response DTO from domain entity.
func FromCategory(cat *category.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          cat.ID.String(),
		Name:        cat.Name,
		Description: cat.Description,
		CreatedAt:   cat.CreatedAt,
		UpdatedAt:   cat.UpdatedAt,
	}
}

// FromCategories converts a slice of entities.
func FromCategories(items []*category.Category) []*CategoryResponse {
	res := make([]*CategoryResponse, 0, len(items))
	for _, cat := range items {
		res = append(res, FromCategory(cat))
	}
	return res
}
