package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gramshield/dashboard/internal/entity"
	"github.com/gramshield/dashboard/internal/realtime"
	"github.com/gramshield/dashboard/internal/view"
)

// ListThreats serves the threats page: cached snapshot filtered by the
// query and sorted newest first. refresh=true forces a full reload.
func (h *Handler) ListThreats(c *gin.Context) {
	refresh := c.Query("refresh") == "true"
	threats, err := loadCached(c.Request.Context(), h.caches.Threats, refresh, h.stores.Threats.GetAll)
	h.observe("threat", "getAll", err)
	if err != nil {
		h.fail(c, "Failed to load threats", err)
		return
	}

	q := view.ThreatQuery{
		Search:   c.Query("search"),
		Severity: entity.Severity(c.Query("severity")),
		Status:   entity.ThreatStatus(c.Query("status")),
		Type:     entity.ThreatType(c.Query("type")),
	}
	out := view.SortThreatsByTimestamp(view.FilterThreats(threats, q))
	c.JSON(http.StatusOK, gin.H{"threats": out, "total": len(out)})
}

// CreateThreat records a new threat from a partial field map.
func (h *Handler) CreateThreat(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	created, err := h.stores.Threats.Create(ctx, fields)
	h.observe("threat", "create", err)
	if err != nil {
		h.fail(c, "Failed to create threat", err)
		return
	}

	h.caches.Threats.Append(created)
	h.notifier.Success(ctx, "Threat created successfully")
	h.publishChange(ctx, realtime.EventEntityCreated, "threat", created)
	c.JSON(http.StatusCreated, created)
}

// GetThreat fetches one threat by id.
func (h *Handler) GetThreat(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	threat, err := h.stores.Threats.GetByID(c.Request.Context(), id)
	h.observe("threat", "getById", err)
	if err != nil {
		h.fail(c, "Failed to load threat", err)
		return
	}
	c.JSON(http.StatusOK, threat)
}

// UpdateThreat applies a partial field map to one threat.
func (h *Handler) UpdateThreat(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	updated, err := h.stores.Threats.Update(ctx, id, fields)
	h.observe("threat", "update", err)
	if err != nil {
		h.fail(c, "Failed to update threat", err)
		return
	}

	h.caches.Threats.Replace(updated)
	h.notifier.Success(ctx, "Threat updated successfully")
	h.publishChange(ctx, realtime.EventEntityUpdated, "threat", updated)
	c.JSON(http.StatusOK, updated)
}

// DeleteThreat removes one threat and returns the deleted record.
func (h *Handler) DeleteThreat(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	deleted, err := h.stores.Threats.Delete(ctx, id)
	h.observe("threat", "delete", err)
	if err != nil {
		h.fail(c, "Failed to delete threat", err)
		return
	}

	h.caches.Threats.Remove(id)
	h.notifier.Success(ctx, "Threat deleted successfully")
	h.publishChange(ctx, realtime.EventEntityDeleted, "threat", deleted)
	c.JSON(http.StatusOK, deleted)
}

// ResolveThreat transitions a threat to resolved.
func (h *Handler) ResolveThreat(c *gin.Context) {
	h.setThreatStatus(c, entity.ThreatStatusResolved,
		"Threat resolved successfully", "Failed to resolve threat")
}

// BlockThreat transitions a threat to blocked.
func (h *Handler) BlockThreat(c *gin.Context) {
	h.setThreatStatus(c, entity.ThreatStatusBlocked,
		"Source blocked successfully", "Failed to block source")
}

// setThreatStatus applies a resolve or block transition. Repeating the
// transition a record is already in is a no-op that still succeeds;
// moving a terminal record to the other terminal state is rejected.
func (h *Handler) setThreatStatus(c *gin.Context, target entity.ThreatStatus, successMsg, failMsg string) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	current, err := h.stores.Threats.GetByID(ctx, id)
	h.observe("threat", "getById", err)
	if err != nil {
		h.fail(c, failMsg, err)
		return
	}

	if current.Status == target {
		h.caches.Threats.Replace(current)
		h.notifier.Success(ctx, successMsg)
		c.JSON(http.StatusOK, current)
		return
	}
	if current.Status.Terminal() {
		h.notifier.Error(ctx, failMsg)
		c.JSON(http.StatusConflict, gin.H{
			"error": failMsg,
			"detail": "threat is already " + string(current.Status),
		})
		return
	}

	updated, err := h.stores.Threats.Update(ctx, id, map[string]any{"status": string(target)})
	h.observe("threat", "update", err)
	if err != nil {
		h.fail(c, failMsg, err)
		return
	}

	h.caches.Threats.Replace(updated)
	h.notifier.Success(ctx, successMsg)
	h.publishChange(ctx, realtime.EventEntityUpdated, "threat", updated)
	c.JSON(http.StatusOK, updated)
}
