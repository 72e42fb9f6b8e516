package middleware

import (
	"net/http"
	"time"

	"github.com/didip/tollbooth/v6"
	"github.com/didip/tollbooth/v6/limiter"
	"github.com/gin-gonic/gin"
)

// RateLimit returns a Gin middleware limiting requests per client IP.
// maxPerSecond is the sustained rate; tollbooth allows short bursts up to
// its internal token bucket size. Rejected requests get a 429.
//
// The password reset endpoints must be rate limited: the reset code is
// the sole authorization factor, so redemption guessing has to be throttled.
func RateLimit(maxPerSecond float64) gin.HandlerFunc {
	lmt := tollbooth.NewLimiter(maxPerSecond, &limiter.ExpirableOptions{
		DefaultExpirationTTL: time.Hour,
	})
	lmt.SetIPLookups([]string{"X-Forwarded-For", "RemoteAddr", "X-Real-IP"})

	return func(c *gin.Context) {
		httpError := tollbooth.LimitByRequest(lmt, c.Writer, c.Request)
		if httpError != nil {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests, slow down",
			})
			return
		}
		c.Next()
	}
}
