package middleware

import (
	"strconv"
	"time"

	mmmetrics "moodyme/backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics is a Gin middleware collecting Prometheus metrics for HTTP requests.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		method := c.Request.Method

		// c.FullPath() yields the route template, which keeps label cardinality low.
		// It is empty for unmatched routes, so fall back to the raw path.
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		latency := time.Since(start)

		if mmmetrics.HTTPRequestCounter != nil {
			mmmetrics.HTTPRequestCounter.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		}

		if mmmetrics.HTTPRequestDuration != nil {
			mmmetrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(latency.Seconds())
		}
	}
}
