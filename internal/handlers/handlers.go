// Package handlers wires the HTTP API: request parsing, cache
// management, store calls and notification side effects.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gramshield/dashboard/internal/cache"
	"github.com/gramshield/dashboard/internal/metrics"
	"github.com/gramshield/dashboard/internal/notify"
	"github.com/gramshield/dashboard/internal/realtime"
	"github.com/gramshield/dashboard/internal/store"
)

// Version identifies the running build on /system/version.
type Version struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildTime string `json:"buildTime"`
}

// Handler carries the dependencies shared by all routes.
type Handler struct {
	stores   store.Stores
	caches   *cache.Caches
	hub      *realtime.Hub
	notifier *notify.Notifier
	metrics  *metrics.Metrics
	log      *zap.Logger
	version  Version
}

// New creates the handler set. hub and metrics may be nil, which
// disables the realtime feed and instrumentation respectively.
func New(stores store.Stores, caches *cache.Caches, hub *realtime.Hub, notifier *notify.Notifier, m *metrics.Metrics, log *zap.Logger, v Version) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if notifier == nil {
		notifier = notify.New(hub, log)
	}
	return &Handler{
		stores:   stores,
		caches:   caches,
		hub:      hub,
		notifier: notifier,
		metrics:  m,
		log:      log,
		version:  v,
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")

	threats := api.Group("/threats")
	{
		threats.GET("", h.ListThreats)
		threats.POST("", h.CreateThreat)
		threats.GET("/:id", h.GetThreat)
		threats.PUT("/:id", h.UpdateThreat)
		threats.DELETE("/:id", h.DeleteThreat)
		threats.POST("/:id/resolve", h.ResolveThreat)
		threats.POST("/:id/block", h.BlockThreat)
	}

	accounts := api.Group("/accounts")
	{
		accounts.GET("", h.ListAccounts)
		accounts.POST("", h.CreateAccount)
		accounts.GET("/stats", h.GetAccountStats)
		accounts.GET("/:id", h.GetAccount)
		accounts.PUT("/:id", h.UpdateAccount)
		accounts.DELETE("/:id", h.DeleteAccount)
	}

	keywords := api.Group("/keywords")
	{
		keywords.GET("", h.ListKeywords)
		keywords.POST("", h.CreateKeyword)
		keywords.GET("/:id", h.GetKeyword)
		keywords.PUT("/:id", h.UpdateKeyword)
		keywords.DELETE("/:id", h.DeleteKeyword)
		keywords.POST("/:id/toggle", h.ToggleKeyword)
	}

	alerts := api.Group("/alerts")
	{
		alerts.GET("", h.ListAlerts)
		alerts.POST("", h.CreateAlert)
		alerts.GET("/:id", h.GetAlert)
		alerts.DELETE("/:id", h.DeleteAlert)
		alerts.POST("/:id/read", h.MarkAlertRead)
	}

	api.GET("/timeline", h.GetTimeline)
	api.GET("/dashboard", h.GetDashboard)

	if h.hub != nil {
		api.GET("/realtime/ws", h.hub.HandleWebSocket)
	}

	system := api.Group("/system")
	{
		system.GET("/health", h.GetHealth)
		system.GET("/version", h.GetVersion)
		system.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
}

// recordID parses the :id path segment. On failure it writes the 400
// response itself and returns false.
func recordID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return 0, false
	}
	return id, true
}

// fail maps a store error to an HTTP status, logs it and pushes the
// operator-facing message as an error toast.
func (h *Handler) fail(c *gin.Context, msg string, err error) {
	status := http.StatusBadGateway
	var nf *store.NotFoundError
	var ve *store.ValidationError
	switch {
	case errors.As(err, &nf):
		status = http.StatusNotFound
	case errors.As(err, &ve):
		status = http.StatusBadRequest
	}

	h.log.Error("request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", status),
		zap.Error(err),
	)
	h.notifier.Error(c.Request.Context(), msg)
	c.JSON(status, gin.H{"error": msg, "detail": err.Error()})
}

func (h *Handler) observe(entity, op string, err error) {
	if h.metrics != nil {
		h.metrics.ObserveStoreOp(entity, op, err)
	}
}

// publishChange pushes an entity change event to the realtime feed.
func (h *Handler) publishChange(ctx context.Context, kind realtime.EventKind, entity string, payload any) {
	if h.hub == nil {
		return
	}
	ev := realtime.Event{Kind: kind, Entity: entity, Payload: payload}
	if err := h.hub.Publish(ctx, ev); err != nil {
		h.log.Warn("failed to publish change event", zap.String("entity", entity), zap.Error(err))
	}
}

// loadCached returns the cached snapshot, falling back to (or forced
// onto) a full load that repopulates the cache.
func loadCached[T any](ctx context.Context, c *cache.Cache[T], refresh bool, getAll func(context.Context) ([]T, error)) ([]T, error) {
	if c.Loaded() && !refresh {
		return c.Snapshot(), nil
	}
	recs, err := getAll(ctx)
	if err != nil {
		return nil, err
	}
	c.SetSnapshot(recs)
	return recs, nil
}

// bindFields decodes the request body into a partial field map. On
// failure it writes the 400 response itself and returns false.
func bindFields(c *gin.Context) (map[string]any, bool) {
	fields := map[string]any{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "detail": err.Error()})
		return nil, false
	}
	return fields, true
}
