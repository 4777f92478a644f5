package ratelimit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/candidlens/interview-screener/internal/monitoring"
)

// Middleware rejects requests from clients that exhausted their bucket with
// 429 and a Retry-After hint.
func (l *Limiter) Middleware(metrics *monitoring.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		if !l.Allow(ip) {
			if metrics != nil {
				metrics.IncrementRateLimitBlock()
			}
			retryAfter := 1
			if l.limit > 0 {
				retryAfter = int(1.0/float64(l.limit)) + 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}
