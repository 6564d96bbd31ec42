package middleware

import (
	"strconv"

	"github.com/N4171k/45DOC/internal/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware counts requests by route template, so /api/challenges/3
// and /api/challenges/4 share a series.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
