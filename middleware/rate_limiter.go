package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/models"
)

// RateLimiter allows maxRequests per client IP, method and route inside each
// window. When Redis is unreachable requests are let through.
func RateLimiter(rdb *redis.Client, maxRequests int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	logger = logger.Named("rate-limit")
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := "rl:" + c.ClientIP() + ":" + c.Request.Method + ":" + c.FullPath()
		resetKey := key + ":resetAt"

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("redis unavailable, not limiting", zap.Error(err))
			c.Next()
			return
		}

		// First request of the window sets the expiry and a stable resetAt.
		if count == 1 {
			resetAt := time.Now().Add(window)
			pipe := rdb.TxPipeline()
			pipe.Expire(ctx, key, window)
			pipe.Set(ctx, resetKey, resetAt.Unix(), window)
			if _, err := pipe.Exec(ctx); err != nil {
				logger.Warn("failed to set window", zap.Error(err))
			}
		}

		resetAtUnix, err := rdb.Get(ctx, resetKey).Int64()
		if err != nil {
			resetAtUnix = time.Now().Add(window).Unix()
		}
		resetAt := time.Unix(resetAtUnix, 0)

		remaining := max(maxRequests-int(count), 0)
		resetIn := max(int(time.Until(resetAt).Seconds()), 0)

		rate := &models.RateLimiter{
			Limit:          maxRequests,
			Remaining:      remaining,
			ResetAt:        resetAt,
			ResetInSeconds: resetIn,
		}
		c.Set(models.RateLimiterKey, rate)
		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if int(count) > maxRequests {
			c.Header("Retry-After", strconv.Itoa(resetIn))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				models.ErrorResponse(c, "Zbyt wiele zapytań, spróbuj ponownie za chwilę"))
			return
		}

		c.Next()
	}
}
