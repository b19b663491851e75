package middleware

import (
	"strconv"
	"time"

	"clinic-perf-cache/internal/metrics"

	"github.com/gin-gonic/gin"
)

// RequestMetrics records request counts and latency per route.
func RequestMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
