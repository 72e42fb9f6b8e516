package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// GinZap returns a gin.HandlerFunc (middleware) that logs requests via zap.
// Based on https://github.com/gin-contrib/zap (simplified and adapted).
func GinZap(logger *zap.Logger, timeFormat string, utc bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		end := time.Now()
		latency := end.Sub(start)
		if utc {
			end = end.UTC()
		}

		fields := []zapcore.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.String("ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.Duration("latency", latency),
		}

		if timeFormat != "" {
			fields = append(fields, zap.String("time", end.Format(timeFormat)))
		}

		if len(c.Errors) > 0 {
			for _, e := range c.Errors.Errors() {
				logger.Error("Request error", append(fields, zap.String("error", e))...)
			}
		} else {
			if c.Writer.Status() >= 500 {
				logger.Error("Server error", fields...)
			} else if c.Writer.Status() >= 400 {
				logger.Warn("Client error", fields...)
			} else {
				logger.Info("Request processed", fields...)
			}
		}
	}
}

// GinRecovery returns a gin.HandlerFunc (middleware) that recovers from panics
// and logs them with a stack trace via zap, returning a generic 500.
func GinRecovery(logger *zap.Logger, timeFormat string, utc bool, recovery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered",
					zap.Any("error", err),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.String("ip", c.ClientIP()),
					zap.String("user_agent", c.Request.UserAgent()),
					zap.Stack("stacktrace"),
				)

				if recovery {
					c.AbortWithStatusJSON(500, gin.H{"error": "Internal Server Error - Panic Recovered"})
				}
			}
		}()
		c.Next()
	}
}
