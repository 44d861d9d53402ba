package middleware

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "rimmarsa.backend/internal/domain/errors"
	"rimmarsa.backend/internal/interfaces/http/response"
	"rimmarsa.backend/pkg/logger"
	"rimmarsa.backend/pkg/redis"
)

// RateLimiter counts hits per key
type RateLimiter interface {
	Allow(ctx context.Context, key string) (redis.RateLimitResult, error)
	Limit() int64
}

// RateLimitByIP limits requests per client IP. When the limiter fails the request
// goes through.
func RateLimitByIP(limiter RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn(c.Request.Context(), "Rate limiter unavailable",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(limiter.Limit(), 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))

		if !result.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(result.ResetIn.Seconds())))
			response.Error(c, domainerrors.RateLimit("too many requests, try again later"))
			return
		}

		c.Next()
	}
}
