package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// MovementsRecorded counts ledger entries by movement type
	MovementsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "merenda_stock_movements_total",
			Help: "Number of stock movements recorded, by movement type.",
		},
		[]string{"type"},
	)

	// AlertsCreated counts derived alerts by type and severity
	AlertsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "merenda_stock_alerts_created_total",
			Help: "Number of stock alerts created, by type and severity.",
		},
		[]string{"type", "severity"},
	)

	// RequestDuration observes HTTP handler latency
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "merenda_http_request_duration_seconds",
			Help:    "HTTP request latency by method, path and status.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(MovementsRecorded, AlertsCreated, RequestDuration)
}

// HTTPMiddleware records request latency for every handled route
func HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		RequestDuration.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}
