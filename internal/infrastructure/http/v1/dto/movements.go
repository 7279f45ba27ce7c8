package dto

import (
	"time"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/entity"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/ledger"
)

// --- Shared movement fields ---

// MovementListQuery narrows journal listings.
type MovementListQuery struct {
	ProductID   string     `form:"productId"`
	WarehouseID string     `form:"warehouseId"`
	FromDate    *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate      *time.Time `form:"toDate" time_format:"2006-01-02"`
	Limit       int        `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset      int        `form:"offset" binding:"omitempty,min=0"`
}

// ToFilter converts query parameters to a domain filter.
func (q *MovementListQuery) ToFilter() (ledger.MovementFilter, error) {
	f := ledger.MovementFilter{
		FromDate: q.FromDate,
		ToDate:   q.ToDate,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	if f.Limit == 0 {
		f.Limit = 50
	}
	if q.ProductID != "" {
		productID, err := id.Parse(q.ProductID)
		if err != nil {
			return f, apperror.NewValidation("invalid product id").WithDetail("productId", q.ProductID)
		}
		f.ProductID = &productID
	}
	if q.WarehouseID != "" {
		warehouseID, err := id.Parse(q.WarehouseID)
		if err != nil {
			return f, apperror.NewValidation("invalid warehouse id").WithDetail("warehouseId", q.WarehouseID)
		}
		f.WarehouseID = &warehouseID
	}
	return f, nil
}

func parsePair(productID, warehouseID string) (id.ID, id.ID, error) {
	pID, err := id.Parse(productID)
	if err != nil {
		return id.Nil(), id.Nil(), apperror.NewValidation("invalid product id").WithDetail("productId", productID)
	}
	wID, err := id.Parse(warehouseID)
	if err != nil {
		return id.Nil(), id.Nil(), apperror.NewValidation("invalid warehouse id").WithDetail("warehouseId", warehouseID)
	}
	return pID, wID, nil
}

// --- Stock In ---

// CreateStockInRequest records goods received into a warehouse.
type CreateStockInRequest struct {
	Date          time.Time `json:"date" binding:"required"`
	ProductID     string    `json:"productId" binding:"required"`
	WarehouseID   string    `json:"warehouseId" binding:"required"`
	Quantity      int64     `json:"quantity" binding:"required"`
	SourceType    *string   `json:"sourceType"`
	SourceDetail  *string   `json:"sourceDetail"`
	ReferenceCode string    `json:"referenceCode" binding:"required"`
	Notes         *string   `json:"notes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateStockInRequest) ToEntity() (*ledger.StockIn, error) {
	productID, warehouseID, err := parsePair(r.ProductID, r.WarehouseID)
	if err != nil {
		return nil, err
	}
	m := &ledger.StockIn{
		BaseEntity:    entity.NewBaseEntity(),
		Date:          r.Date,
		ProductID:     productID,
		WarehouseID:   warehouseID,
		Quantity:      r.Quantity,
		SourceDetail:  r.SourceDetail,
		ReferenceCode: r.ReferenceCode,
		Notes:         r.Notes,
	}
	if r.SourceType != nil {
		st := ledger.SourceType(*r.SourceType)
		m.SourceType = &st
	}
	return m, nil
}

// UpdateStockInRequest rewrites an inbound movement.
type UpdateStockInRequest struct {
	Date          time.Time `json:"date" binding:"required"`
	ProductID     string    `json:"productId" binding:"required"`
	WarehouseID   string    `json:"warehouseId" binding:"required"`
	Quantity      int64     `json:"quantity" binding:"required"`
	SourceType    *string   `json:"sourceType"`
	SourceDetail  *string   `json:"sourceDetail"`
	ReferenceCode string    `json:"referenceCode" binding:"required"`
	Notes         *string   `json:"notes"`
}

// ToEntity builds the replacement movement with the given ID.
func (r *UpdateStockInRequest) ToEntity(movementID id.ID) (*ledger.StockIn, error) {
	productID, warehouseID, err := parsePair(r.ProductID, r.WarehouseID)
	if err != nil {
		return nil, err
	}
	m := &ledger.StockIn{
		Date:          r.Date,
		ProductID:     productID,
		WarehouseID:   warehouseID,
		Quantity:      r.Quantity,
		SourceDetail:  r.SourceDetail,
		ReferenceCode: r.ReferenceCode,
		Notes:         r.Notes,
	}
	m.ID = movementID
	if r.SourceType != nil {
		st := ledger.SourceType(*r.SourceType)
		m.SourceType = &st
	}
	return m, nil
}

// StockInResponse is the response body for an inbound movement.
type StockInResponse struct {
	ID            string    `json:"id"`
	Date          time.Time `json:"date"`
	ProductID     string    `json:"productId"`
	WarehouseID   string    `json:"warehouseId"`
	Quantity      int64     `json:"quantity"`
	SourceType    *string   `json:"sourceType,omitempty"`
	SourceDetail  *string   `json:"sourceDetail,omitempty"`
	ReferenceCode string    `json:"referenceCode"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedBy     string    `json:"createdBy,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FromStockIn creates response DTO from domain entity.
func FromStockIn(m *ledger.StockIn) *StockInResponse {
	res := &StockInResponse{
		ID:            m.ID.String(),
		Date:          m.Date,
		ProductID:     m.ProductID.String(),
		WarehouseID:   m.WarehouseID.String(),
		Quantity:      m.Quantity,
		SourceDetail:  m.SourceDetail,
		ReferenceCode: m.ReferenceCode,
		Notes:         m.Notes,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.SourceType != nil {
		st := string(*m.SourceType)
		res.SourceType = &st
	}
	return res
}

// FromStockIns converts a slice of entities.
func FromStockIns(items []*ledger.StockIn) []*StockInResponse {
	res := make([]*StockInResponse, 0, len(items))
	for _, m := range items {
		res = append(res, FromStockIn(m))
	}
	return res
}

// --- Stock Out ---

// CreateStockOutRequest records goods issued from a warehouse.
type CreateStockOutRequest struct {
	Date              time.Time `json:"date" binding:"required"`
	ProductID         string    `json:"productId" binding:"required"`
	WarehouseID       string    `json:"warehouseId" binding:"required"`
	Quantity          int64     `json:"quantity" binding:"required"`
	DestinationType   *string   `json:"destinationType"`
	DestinationDetail *string   `json:"destinationDetail"`
	ReferenceCode     string    `json:"referenceCode" binding:"required"`
	Notes             *string   `json:"notes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateStockOutRequest) ToEntity() (*ledger.StockOut, error) {
	productID, warehouseID, err := parsePair(r.ProductID, r.WarehouseID)
	if err != nil {
		return nil, err
	}
	m := &ledger.StockOut{
		BaseEntity:        entity.NewBaseEntity(),
		Date:              r.Date,
		ProductID:         productID,
		WarehouseID:       warehouseID,
		Quantity:          r.Quantity,
		DestinationDetail: r.DestinationDetail,
		ReferenceCode:     r.ReferenceCode,
		Notes:             r.Notes,
	}
	if r.DestinationType != nil {
		dt := ledger.DestinationType(*r.DestinationType)
		m.DestinationType = &dt
	}
	return m, nil
}

// UpdateStockOutRequest rewrites an outbound movement.
type UpdateStockOutRequest struct {
	Date              time.Time `json:"date" binding:"required"`
	ProductID         string    `json:"productId" binding:"required"`
	WarehouseID       string    `json:"warehouseId" binding:"required"`
	Quantity          int64     `json:"quantity" binding:"required"`
	DestinationType   *string   `json:"destinationType"`
	DestinationDetail *string   `json:"destinationDetail"`
	ReferenceCode     string    `json:"referenceCode" binding:"required"`
	Notes             *string   `json:"notes"`
}

// ToEntity builds the replacement movement with the given ID.
func (r *UpdateStockOutRequest) ToEntity(movementID id.ID) (*ledger.StockOut, error) {
	productID, warehouseID, err := parsePair(r.ProductID, r.WarehouseID)
	if err != nil {
		return nil, err
	}
	m := &ledger.StockOut{
		Date:              r.Date,
		ProductID:         productID,
		WarehouseID:       warehouseID,
		Quantity:          r.Quantity,
		DestinationDetail: r.DestinationDetail,
		ReferenceCode:     r.ReferenceCode,
		Notes:             r.Notes,
	}
	m.ID = movementID
	if r.DestinationType != nil {
		dt := ledger.DestinationType(*r.DestinationType)
		m.DestinationType = &dt
	}
	return m, nil
}

// StockOutResponse is the response body for an outbound movement.
type StockOutResponse struct {
	ID                string    `json:"id"`
	Date              time.Time `json:"date"`
	ProductID         string    `json:"productId"`
	WarehouseID       string    `json:"warehouseId"`
	Quantity          int64     `json:"quantity"`
	DestinationType   *string   `json:"destinationType,omitempty"`
	DestinationDetail *string   `json:"destinationDetail,omitempty"`
	ReferenceCode     string    `json:"referenceCode"`
	Notes             *string   `json:"notes,omitempty"`
	CreatedBy         string    `json:"createdBy,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// FromStockOut creates response DTO from domain entity.
func FromStockOut(m *ledger.StockOut) *StockOutResponse {
	res := &StockOutResponse{
		ID:                m.ID.String(),
		Date:              m.Date,
		ProductID:         m.ProductID.String(),
		WarehouseID:       m.WarehouseID.String(),
		Quantity:          m.Quantity,
		DestinationDetail: m.DestinationDetail,
		ReferenceCode:     m.ReferenceCode,
		Notes:             m.Notes,
		CreatedBy:         m.CreatedBy,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	if m.DestinationType != nil {
		dt := string(*m.DestinationType)
		res.DestinationType = &dt
	}
	return res
}

// FromStockOuts converts a slice of entities.
func FromStockOuts(items []*ledger.StockOut) []*StockOutResponse {
	res := make([]*StockOutResponse, 0, len(items))
	for _, m := range items {
		res = append(res, FromStockOut(m))
	}
	return res
}

// --- Transfers ---

// CreateTransferRequest records a planned movement between warehouses.
type CreateTransferRequest struct {
	Date            time.Time `json:"date" binding:"required"`
	ProductID       string    `json:"productId" binding:"required"`
	FromWarehouseID string    `json:"fromWarehouseId" binding:"required"`
	ToWarehouseID   string    `json:"toWarehouseId" binding:"required"`
	Quantity        int64     `json:"quantity" binding:"required"`
	ReferenceCode   string    `json:"referenceCode" binding:"required"`
	Status          *string   `json:"status"`
	Notes           *string   `json:"notes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateTransferRequest) ToEntity() (*ledger.Transfer, error) {
	productID, fromID, err := parsePair(r.ProductID, r.FromWarehouseID)
	if err != nil {
		return nil, err
	}
	toID, err := id.Parse(r.ToWarehouseID)
	if err != nil {
		return nil, apperror.NewValidation("invalid warehouse id").WithDetail("toWarehouseId", r.ToWarehouseID)
	}
	t := &ledger.Transfer{
		BaseEntity:      entity.NewBaseEntity(),
		Date:            r.Date,
		ProductID:       productID,
		FromWarehouseID: fromID,
		ToWarehouseID:   toID,
		Quantity:        r.Quantity,
		ReferenceCode:   r.ReferenceCode,
		Notes:           r.Notes,
	}
	if r.Status != nil {
		t.Status = ledger.TransferStatus(*r.Status)
	}
	return t, nil
}

// UpdateTransferRequest rewrites a transfer record.
type UpdateTransferRequest struct {
	Date            time.Time `json:"date" binding:"required"`
	ProductID       string    `json:"productId" binding:"required"`
	FromWarehouseID string    `json:"fromWarehouseId" binding:"required"`
	ToWarehouseID   string    `json:"toWarehouseId" binding:"required"`
	Quantity        int64     `json:"quantity" binding:"required"`
	ReferenceCode   string    `json:"referenceCode" binding:"required"`
	Status          string    `json:"status" binding:"required"`
	Notes           *string   `json:"notes"`
}

// ToEntity builds the replacement transfer with the given ID.
func (r *UpdateTransferRequest) ToEntity(transferID id.ID) (*ledger.Transfer, error) {
	productID, fromID, err := parsePair(r.ProductID, r.FromWarehouseID)
	if err != nil {
		return nil, err
	}
	toID, err := id.Parse(r.ToWarehouseID)
	if err != nil {
		return nil, apperror.NewValidation("invalid warehouse id").WithDetail("toWarehouseId", r.ToWarehouseID)
	}
	t := &ledger.Transfer{
		Date:            r.Date,
		ProductID:       productID,
		FromWarehouseID: fromID,
		ToWarehouseID:   toID,
		Quantity:        r.Quantity,
		ReferenceCode:   r.ReferenceCode,
		Status:          ledger.TransferStatus(r.Status),
		Notes:           r.Notes,
	}
	t.ID = transferID
	return t, nil
}

// TransferListQuery narrows transfer listings.
type TransferListQuery struct {
	ProductID       string  `form:"productId"`
	FromWarehouseID string  `form:"fromWarehouseId"`
	ToWarehouseID   string  `form:"toWarehouseId"`
	Status          *string `form:"status"`
	Limit           int     `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset          int     `form:"offset" binding:"omitempty,min=0"`
}

// ToFilter converts query parameters to a domain filter.
func (q *TransferListQuery) ToFilter() (ledger.TransferFilter, error) {
	f := ledger.TransferFilter{Limit: q.Limit, Offset: q.Offset}
	if f.Limit == 0 {
		f.Limit = 50
	}
	if q.ProductID != "" {
		productID, err := id.Parse(q.ProductID)
		if err != nil {
			return f, apperror.NewValidation("invalid product id").WithDetail("productId", q.ProductID)
		}
		f.ProductID = &productID
	}
	if q.FromWarehouseID != "" {
		fromID, err := id.Parse(q.FromWarehouseID)
		if err != nil {
			return f, apperror.NewValidation("invalid warehouse id").WithDetail("fromWarehouseId", q.FromWarehouseID)
		}
		f.FromWarehouseID = &fromID
	}
	if q.ToWarehouseID != "" {
		toID, err := id.Parse(q.ToWarehouseID)
		if err != nil {
			return f, apperror.NewValidation("invalid warehouse id").WithDetail("toWarehouseId", q.ToWarehouseID)
		}
		f.ToWarehouseID = &toID
	}
	if q.Status != nil {
		status := ledger.TransferStatus(*q.Status)
		f.Status = &status
	}
	return f, nil
}

// TransferResponse is the response body for a transfer.
type TransferResponse struct {
	ID              string                `json:"id"`
	Date            time.Time             `json:"date"`
	ProductID       string                `json:"productId"`
	FromWarehouseID string                `json:"fromWarehouseId"`
	ToWarehouseID   string                `json:"toWarehouseId"`
	Quantity        int64                 `json:"quantity"`
	ReferenceCode   string                `json:"referenceCode"`
	Status          ledger.TransferStatus `json:"status"`
	Notes           *string               `json:"notes,omitempty"`
	CreatedBy       string                `json:"createdBy,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

// FromTransfer creates response DTO from domain entity.
func FromTransfer(t *ledger.Transfer) *TransferResponse {
	return &TransferResponse{
		ID:              t.ID.String(),
		Date:            t.Date,
		ProductID:       t.ProductID.String(),
		FromWarehouseID: t.FromWarehouseID.String(),
		ToWarehouseID:   t.ToWarehouseID.String(),
		Quantity:        t.Quantity,
		ReferenceCode:   t.ReferenceCode,
		Status:          t.Status,
		Notes:           t.Notes,
		CreatedBy:       t.CreatedBy,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// FromTransfers converts a slice of entities.
func FromTransfers(items []*ledger.Transfer) []*TransferResponse {
	res := make([]*TransferResponse, 0, len(items))
	for _, t := range items {
		res = append(res, FromTransfer(t))
	}
	return res
}
