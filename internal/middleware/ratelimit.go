package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/udaan-app/udaan-backend/internal/logger"
)

// RateLimit enforces a fixed per-minute window per client IP and path,
// counted in redis so limits hold across replicas. A nil client disables the
// limiter, and redis errors fail open: throttling is protection, not a
// dependency.
func RateLimit(rdb *redis.Client, perMinute int, baseLog *logger.Logger) gin.HandlerFunc {
	log := baseLog.With("middleware", "RateLimit")
	if rdb == nil || perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		window := time.Now().UTC().Unix() / 60
		key := fmt.Sprintf("ratelimit:%s:%s:%d", c.ClientIP(), c.FullPath(), window)

		ctx := c.Request.Context()
		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Warn("Rate limit check failed, allowing request", "error", err)
			c.Next()
			return
		}
		if count == 1 {
			if err := rdb.Expire(ctx, key, time.Minute).Err(); err != nil {
				log.Warn("Failed to set rate limit expiry", "error", err)
			}
		}
		if count > int64(perMinute) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
