// Package metrics exposes Prometheus instrumentation for the dashboard
// service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	storeOpsTotal       *prometheus.CounterVec
	threatLevel         prometheus.Gauge
	connectedClients    prometheus.Gauge
}

// New registers the collectors on the default registry.
func New() *Metrics {
	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_http_requests_total",
				Help: "Total number of HTTP requests handled",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dashboard_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		storeOpsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_store_operations_total",
				Help: "Total number of record store operations",
			},
			[]string{"entity", "operation", "status"},
		),
		threatLevel: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "dashboard_threat_level",
				Help: "Current computed threat level, 0 to 100",
			},
		),
		connectedClients: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "dashboard_websocket_clients",
				Help: "Currently connected WebSocket clients",
			},
		),
	}
}

// ObserveStoreOp records the outcome of a store operation.
func (m *Metrics) ObserveStoreOp(entity, op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.storeOpsTotal.WithLabelValues(entity, op, status).Inc()
}

// SetThreatLevel publishes the current gauge value.
func (m *Metrics) SetThreatLevel(level int) {
	m.threatLevel.Set(float64(level))
}

// SetConnectedClients publishes the hub's client count.
func (m *Metrics) SetConnectedClients(n int) {
	m.connectedClients.Set(float64(n))
}

// GinMiddleware instruments every request with count and latency.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.httpRequestDuration.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
