package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/moodify/core/internal/pkg/ratelimit"
	"github.com/moodify/core/internal/pkg/response"
)

// RateLimit rejects requests over the per-IP budget with 429.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if limiter == nil || ip == "" {
			c.Next()
			return
		}
		if !limiter.Allow(c.Request.Context(), ip) {
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
