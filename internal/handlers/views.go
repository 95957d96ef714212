package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gramshield/dashboard/internal/view"
)

// GetTimeline serves the merged threat and alert event feed, grouped by
// calendar day.
func (h *Handler) GetTimeline(c *gin.Context) {
	ctx := c.Request.Context()
	refresh := c.Query("refresh") == "true"

	threats, err := loadCached(ctx, h.caches.Threats, refresh, h.stores.Threats.GetAll)
	h.observe("threat", "getAll", err)
	if err != nil {
		h.fail(c, "Failed to load timeline", err)
		return
	}
	alerts, err := loadCached(ctx, h.caches.Alerts, refresh, h.stores.Alerts.GetAll)
	h.observe("alert", "getAll", err)
	if err != nil {
		h.fail(c, "Failed to load timeline", err)
		return
	}

	events := view.BuildTimeline(threats, alerts)
	events = view.FilterEvents(events, view.EventQuery{
		Search: c.Query("search"),
		Type:   view.EventType(c.Query("type")),
		Range:  view.TimeRange(c.Query("range")),
	})
	groups := view.GroupEventsByDay(events, time.Now(), time.Local)
	c.JSON(http.StatusOK, gin.H{"groups": groups, "total": len(events)})
}

// GetDashboard serves the headline stats, the threat level gauge and
// the most recent active threats.
func (h *Handler) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	refresh := c.Query("refresh") == "true"

	threats, err := loadCached(ctx, h.caches.Threats, refresh, h.stores.Threats.GetAll)
	h.observe("threat", "getAll", err)
	if err != nil {
		h.fail(c, "Failed to load dashboard", err)
		return
	}
	accounts, err := loadCached(ctx, h.caches.Accounts, refresh, h.stores.Accounts.GetAll)
	h.observe("suspicious_account", "getAll", err)
	if err != nil {
		h.fail(c, "Failed to load dashboard", err)
		return
	}
	alerts, err := loadCached(ctx, h.caches.Alerts, refresh, h.stores.Alerts.GetAll)
	h.observe("alert", "getAll", err)
	if err != nil {
		h.fail(c, "Failed to load dashboard", err)
		return
	}

	stats := view.ComputeDashboardStats(threats, accounts, alerts)
	if h.metrics != nil {
		h.metrics.SetThreatLevel(stats.ThreatLevel)
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":         stats,
		"recentThreats": view.RecentActiveThreats(threats, 3),
	})
}

// GetHealth reports liveness and the realtime client count.
func (h *Handler) GetHealth(c *gin.Context) {
	clients := 0
	if h.hub != nil {
		clients = h.hub.ClientCount()
		if h.metrics != nil {
			h.metrics.SetConnectedClients(clients)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"clients": clients,
		"time":    time.Now().UTC(),
	})
}

// GetVersion reports the running build.
func (h *Handler) GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, h.version)
}
