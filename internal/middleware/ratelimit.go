package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/campus-events/backend/pkg/response"
)

// RateLimit returns a middleware that caps requests per client IP
// using a Redis counter with a rolling one-minute window. A nil client
// disables limiting. Redis errors fail open: the form stays reachable
// when Redis is down.
func RateLimit(rdb *redis.Client, maxPerMinute int, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}
		key := fmt.Sprintf("ratelimit:%s:%s", c.FullPath(), c.ClientIP())
		count, err := rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			logger.Warn("rate limit check failed", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(c.Request.Context(), key, time.Minute)
		}
		if count > int64(maxPerMinute) {
			response.TooManyRequests(c, "Too many requests. Please try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}
