package delivery

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"planner-backend/internal/planner/domain"
	"planner-backend/internal/planner/usecase"
)

// PlannerHandler handles planner-related HTTP requests
type PlannerHandler struct {
	plannerUsecase usecase.PlannerUsecase
}

// NewPlannerHandler creates a new PlannerHandler
func NewPlannerHandler(plannerUsecase usecase.PlannerUsecase) *PlannerHandler {
	return &PlannerHandler{
		plannerUsecase: plannerUsecase,
	}
}

// CreateItemRequest represents the request body for creating a manual item
type CreateItemRequest struct {
	Title         string     `json:"title" binding:"required"`
	Notes         string     `json:"notes"`
	DueAt         *time.Time `json:"due_at"`
	ScheduledTime *string    `json:"scheduled_time"`
}

// ArchiveItemRequest represents the request body for archiving an item
type ArchiveItemRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// GetPlanner returns the planner snapshot, optionally syncing with the
// external feed first. A failed sync degrades to a stale snapshot with a
// sync_error field instead of failing the read.
// GET /api/planner?refresh=true
func (h *PlannerHandler) GetPlanner(c *gin.Context) {
	var syncErr error
	if c.DefaultQuery("refresh", "false") == "true" {
		syncErr = h.plannerUsecase.Sync(c.Request.Context())
	}

	snapshot, err := h.plannerUsecase.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{
		"active":  snapshot.Active,
		"archive": snapshot.Archive,
	}
	if syncErr != nil {
		resp["sync_error"] = syncErr.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// CreateItem creates a new manual item
// POST /api/planner/items
func (h *PlannerHandler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.plannerUsecase.AddManual(c.Request.Context(), req.Title, req.Notes, req.DueAt, req.ScheduledTime)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ArchiveItem completes or soft-deletes an active item
// POST /api/planner/items/:id/archive
func (h *PlannerHandler) ArchiveItem(c *gin.Context) {
	var req ArchiveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reason, err := domain.ParseArchiveReason(req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	item, err := h.plannerUsecase.Archive(c.Request.Context(), c.Param("id"), reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// RestoreItem moves an archived item back to the active list
// POST /api/planner/items/:id/restore
func (h *PlannerHandler) RestoreItem(c *gin.Context) {
	item, err := h.plannerUsecase.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// PurgeItem permanently removes an item and its audit events
// DELETE /api/planner/items/:id/permanent
func (h *PlannerHandler) PurgeItem(c *gin.Context) {
	if err := h.plannerUsecase.Purge(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "purged"})
}

// GetItemEvents returns an item's audit trail
// GET /api/planner/items/:id/events
func (h *PlannerHandler) GetItemEvents(c *gin.Context) {
	events, err := h.plannerUsecase.ItemEvents(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// respondError maps domain errors onto HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUpstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
