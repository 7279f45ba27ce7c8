package handlers

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/infrastructure/storage/postgres"
)

// ActivityHandler serves the activity trail recorded for movements.
type ActivityHandler struct {
	*BaseHandler
	log *postgres.ActivityLog
}

// NewActivityHandler creates a new activity handler.
func NewActivityHandler(base *BaseHandler, log *postgres.ActivityLog) *ActivityHandler {
	return &ActivityHandler{
		BaseHandler: base,
		log:         log,
	}
}

// ActivityEntryResponse is one activity trail item.
type ActivityEntryResponse struct {
	ID         string          `json:"id"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	UserID     string          `json:"userId,omitempty"`
	UserEmail  string          `json:"userEmail,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

var activityEntityTypes = map[string]bool{
	"stock_in":       true,
	"stock_out":      true,
	"stock_transfer": true,
}

// GetHistory handles GET /activity/:entityType/:id - activity trail for
// one movement record, newest first.
func (h *ActivityHandler) GetHistory(c *gin.Context) {
	ctx := c.Request.Context()

	entityType := c.Param("entityType")
	if !activityEntityTypes[entityType] {
		h.Error(c, apperror.NewValidation("unknown entity type").
			WithDetail("entityType", entityType))
		return
	}

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid entity id"))
		return
	}

	limit := h.ParseIntQuery(c, "limit", 50)
	if limit < 1 || limit > 500 {
		limit = 50
	}

	entries, err := h.log.GetEntityHistory(ctx, entityType, entityID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]ActivityEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, ActivityEntryResponse{
			ID:         e.ID.String(),
			Action:     e.Action,
			EntityType: e.EntityType,
			EntityID:   e.EntityID.String(),
			UserID:     e.UserID,
			UserEmail:  e.UserEmail,
			Payload:    e.Payload,
			CreatedAt:  e.CreatedAt,
		})
	}

	h.OK(c, gin.H{"items": items})
}
