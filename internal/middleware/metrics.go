package middleware

import (
	"strconv"
	"time"

	"github.com/SscSPs/athena_ledger/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records request count, latency and in-flight requests.
// Paths are labelled by route template so ids do not explode cardinality.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.HTTPInFlight.Inc()
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.HTTPInFlight.Dec()
	}
}
