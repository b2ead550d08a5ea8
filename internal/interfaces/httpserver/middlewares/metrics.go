package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"moodcanvas-server/internal/infrastructure/metrics"
)

const unmatchedRoute = "unmatched"

// routeLabel keeps metric and span names bounded: raw paths carry diary ids
// and image filenames.
func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return unmatchedRoute
}

// MetricsMiddleware feeds the request counter and latency histogram.
// Scrapes of /metrics itself are skipped.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		began := time.Now()
		c.Next()

		metrics.RecordRequest(
			c.Request.Method,
			routeLabel(c),
			strconv.Itoa(c.Writer.Status()),
			time.Since(began).Seconds(),
		)
	}
}
