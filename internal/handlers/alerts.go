package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gramshield/dashboard/internal/realtime"
	"github.com/gramshield/dashboard/internal/view"
)

// ListAlerts serves the notification feed, newest first. unread=true
// restricts to unread alerts; limit caps the result.
func (h *Handler) ListAlerts(c *gin.Context) {
	refresh := c.Query("refresh") == "true"
	alerts, err := loadCached(c.Request.Context(), h.caches.Alerts, refresh, h.stores.Alerts.GetAll)
	h.observe("alert", "getAll", err)
	if err != nil {
		h.fail(c, "Failed to load alerts", err)
		return
	}

	if c.Query("unread") == "true" {
		alerts = view.UnreadAlerts(alerts)
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	out := view.AlertFeed(alerts, limit)
	c.JSON(http.StatusOK, gin.H{"alerts": out, "total": len(out)})
}

// CreateAlert raises a new alert.
func (h *Handler) CreateAlert(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	created, err := h.stores.Alerts.Create(ctx, fields)
	h.observe("alert", "create", err)
	if err != nil {
		h.fail(c, "Failed to create alert", err)
		return
	}

	h.caches.Alerts.Append(created)
	h.publishChange(ctx, realtime.EventEntityCreated, "alert", created)
	c.JSON(http.StatusCreated, created)
}

// GetAlert fetches one alert by id.
func (h *Handler) GetAlert(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	alert, err := h.stores.Alerts.GetByID(c.Request.Context(), id)
	h.observe("alert", "getById", err)
	if err != nil {
		h.fail(c, "Failed to load alert", err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

// DeleteAlert dismisses one alert and returns the deleted record.
func (h *Handler) DeleteAlert(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	deleted, err := h.stores.Alerts.Delete(ctx, id)
	h.observe("alert", "delete", err)
	if err != nil {
		h.fail(c, "Failed to dismiss alert", err)
		return
	}

	h.caches.Alerts.Remove(id)
	h.notifier.Success(ctx, "Alert dismissed")
	h.publishChange(ctx, realtime.EventEntityDeleted, "alert", deleted)
	c.JSON(http.StatusOK, deleted)
}

// MarkAlertRead marks one alert as read.
func (h *Handler) MarkAlertRead(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	updated, err := h.stores.Alerts.MarkRead(ctx, id)
	h.observe("alert", "update", err)
	if err != nil {
		h.fail(c, "Failed to mark alert as read", err)
		return
	}

	h.caches.Alerts.Replace(updated)
	h.notifier.Success(ctx, "Alert marked as read")
	h.publishChange(ctx, realtime.EventEntityUpdated, "alert", updated)
	c.JSON(http.StatusOK, updated)
}
