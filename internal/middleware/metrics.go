package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/progress-dashboard-api/internal/service"
)

// unmatchedRoute labels requests gin could not route. Raw paths would carry course and
// measurement ids into the label set.
const unmatchedRoute = "unmatched"

// Metrics times every request against its route template, e.g. /courses/:id/projection.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
