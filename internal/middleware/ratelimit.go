package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"c2b-order-backend/internal/models"
)

// RateLimit caps requests per client IP per second using a redis counter.
// Redis failures fail open: the request proceeds.
func RateLimit(rdb *redis.Client, maxRequests int) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := "ratelimit:" + c.ClientIP()

		count, err := rdb.Get(ctx, key).Int()
		if err == nil && count >= maxRequests {
			c.JSON(http.StatusTooManyRequests, models.ErrorResponse{Error: "too many requests"})
			c.Abort()
			return
		}

		rdb.Incr(ctx, key)
		rdb.Expire(ctx, key, time.Second)
		c.Next()
	}
}
