// README: Redis fixed-window rate limiter for the plan endpoint.
package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const rateLimitKeyPrefix = "ratelimit:plan:"

// RateLimit caps requests per client IP per minute using a Redis fixed window.
// A nil client disables the limiter. Redis failures fail open: generation cost
// control must not take the whole endpoint down with it.
func RateLimit(rdb *redis.Client, perMinute int, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || perMinute <= 0 {
			c.Next()
			return
		}

		window := time.Now().UTC().Format("2006-01-02T15:04")
		key := fmt.Sprintf("%s%s:%s", rateLimitKeyPrefix, c.ClientIP(), window)

		count, err := rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			log.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(c.Request.Context(), key, time.Minute)
		}

		if count > int64(perMinute) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				gin.H{"error": "rate limit exceeded, try again later"})
			return
		}
		c.Next()
	}
}
