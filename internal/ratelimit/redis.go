package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisLimiter is the shared-state counterpart of SlidingWindow: the
// window lives in a Redis sorted set keyed by request timestamp, so the
// budget holds across processes. Fails open on Redis errors.
type RedisLimiter struct {
	client *redis.Client
	window time.Duration
	max    int
	logger *zap.Logger
}

func NewRedisLimiter(client *redis.Client, window time.Duration, maxRequests int, logger *zap.Logger) *RedisLimiter {
	if window < time.Second {
		window = time.Second
	}
	if maxRequests < 1 {
		maxRequests = 1
	}
	return &RedisLimiter{
		client: client,
		window: window,
		max:    maxRequests,
		logger: logger,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	redisKey := "ratelimit:" + key
	now := time.Now().UnixMilli()
	windowStart := now - l.window.Milliseconds()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	countCmd := pipe.ZCard(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.Warn("rate limiter redis error, failing open", zap.Error(err))
		return true
	}

	if int(countCmd.Val()) >= l.max {
		return false
	}

	record := l.client.Pipeline()
	record.ZAdd(ctx, redisKey, redis.Z{Score: float64(now), Member: now})
	record.Expire(ctx, redisKey, l.window)
	if _, err := record.Exec(ctx); err != nil {
		l.logger.Warn("rate limiter redis error, failing open", zap.Error(err))
	}
	return true
}
