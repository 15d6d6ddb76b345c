package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks total HTTP requests
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// RequestDuration tracks HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// OrdersCreated counts created orders
	OrdersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "laundry_orders_created_total",
			Help: "Total number of orders created",
		},
	)

	// OrderStatusChanges counts status transitions by target status
	OrderStatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "laundry_order_status_changes_total",
			Help: "Total number of order status transitions",
		},
		[]string{"status"},
	)

	// ReceiptsGenerated counts rendered receipt PDFs
	ReceiptsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "laundry_receipts_generated_total",
			Help: "Total number of receipt PDFs generated",
		},
	)
)

// PrometheusMiddleware creates a Gin middleware for automatic metrics collection
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		RequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}
