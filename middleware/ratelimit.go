package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimit allows perMinute requests per client IP in fixed one-minute windows counted in
// Redis. Requests pass when Redis cannot be reached.
func RateLimit(client *redis.Client, perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || perMinute <= 0 {
			c.Next()
			return
		}

		now := time.Now()
		window := now.Truncate(time.Minute)
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), window.Unix())

		ctx := c.Request.Context()
		pipe := client.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, time.Minute)
		if _, err := pipe.Exec(ctx); err != nil {
			log.Printf("Rate limiter unavailable, letting request through: %v", err)
			c.Next()
			return
		}

		count := incr.Val()
		remaining := int64(perMinute) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(perMinute))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(perMinute) {
			retry := window.Add(time.Minute).Sub(now)
			c.Header("Retry-After", strconv.Itoa(int(retry.Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": fmt.Sprintf("Rate limit exceeded: %d per 1 minute", perMinute)})
			return
		}
		c.Next()
	}
}
