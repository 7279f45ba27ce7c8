package dto

import (
	"time"

	"stockyard/internal/domain/catalogs/warehouse"
)

// --- Request DTOs ---

// CreateWarehouseRequest is the request body for creating a warehouse.
type CreateWarehouseRequest struct {
	Name     string  `json:"name" binding:"required"`
	Location *string `json:"location"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateWarehouseRequest) ToEntity() *warehouse.Warehouse {
	wh := warehouse.NewWarehouse(r.Name)
	wh.Location = r.Location
	return wh
}

// UpdateWarehouseRequest is the request body for updating a warehouse.
type UpdateWarehouseRequest struct {
	Name     string  `json:"name" binding:"required"`
	Location *string `json:"location,omitempty"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateWarehouseRequest) ApplyTo(wh *warehouse.Warehouse) {
	wh.Name = r.Name
	wh.Location = r.Location
}

// --- Response DTOs ---

// WarehouseResponse is the response body for a warehouse.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  *string   `json:"location,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromWarehouse creates response DTO from domain entity.
func FromWarehouse(wh *warehouse.Warehouse) *WarehouseResponse {
	return &WarehouseResponse{
		ID:        wh.ID.String(),
		Name:      wh.Name,
		Location:  wh.Location,
		CreatedAt: wh.CreatedAt,
		UpdatedAt: wh.UpdatedAt,
	}
}

// FromWarehouses converts a slice of entities.
func FromWarehouses(items []*warehouse.Warehouse) []*WarehouseResponse {
	res := make([]*WarehouseResponse, 0, len(items))
	for _, wh := range items {
		res = append(res, FromWarehouse(wh))
	}
	return res
}
