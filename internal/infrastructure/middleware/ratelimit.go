package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/imgpipe/internal/infrastructure/config"
	"github.com/marcos-nsantos/imgpipe/internal/pkg/httputil"
)

// RateLimiter is a sliding-window limiter backed by a redis sorted set per client.
// Redis failures let the request through.
type RateLimiter struct {
	client         redis.Cmdable
	requestsPerMin int
	windowSize     time.Duration
	logger         *zap.Logger
}

func NewRateLimiter(client redis.Cmdable, cfg config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		client:         client,
		requestsPerMin: cfg.RequestsPerMin,
		windowSize:     time.Minute,
		logger:         logger,
	}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, err := rl.isAllowed(c.Request.Context(), rl.clientKey(c))
		if err != nil {
			rl.logger.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.requestsPerMin))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(rl.windowSize.Seconds())))
			httputil.ErrorWithCode(c, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}

// clientKey buckets authenticated callers by uploader and everyone else by IP.
func (rl *RateLimiter) clientKey(c *gin.Context) string {
	if userID, ok := c.Get(UserIDKey); ok {
		if id, ok := userID.(uuid.UUID); ok {
			return "ratelimit:user:" + id.String()
		}
	}
	return "ratelimit:ip:" + c.ClientIP()
}

func (rl *RateLimiter) isAllowed(ctx context.Context, key string) (bool, int, error) {
	now := time.Now()
	windowStart := now.Add(-rl.windowSize).UnixMicro()

	pipe := rl.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixMicro()),
		Member: fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString()[:8]),
	})
	countCmd := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, rl.windowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		return true, rl.requestsPerMin, err
	}

	count := int(countCmd.Val())
	remaining := max(rl.requestsPerMin-count, 0)

	return count <= rl.requestsPerMin, remaining, nil
}
