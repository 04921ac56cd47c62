package middleware

import (
	"strconv"

	"seatly/internal/infra/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware counts requests by route template so ids never become label values.
func MetricsMiddleware(m *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(route, strconv.Itoa(c.Writer.Status()))
	}
}
