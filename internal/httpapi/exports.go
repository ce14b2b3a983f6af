package httpapi

import (
	"context"
	"fmt"
	"time"

	"centre-portal/pkg/logger"
	"centre-portal/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// ExportLimiter caps concurrent spreadsheet exports per user.
type ExportLimiter interface {
	// Acquire takes a slot. ok is false when the user is at the cap; release
	// must be called once the export finishes.
	Acquire(ctx context.Context, userID int64) (release func(), ok bool, err error)
}

// RedisExportLimiter shares the cap across API replicas.
type RedisExportLimiter struct {
	rdb   *redis.Client
	limit int
	ttl   time.Duration
}

func NewRedisExportLimiter(rdb *redis.Client, limit int) *RedisExportLimiter {
	if limit <= 0 {
		limit = 2
	}
	return &RedisExportLimiter{rdb: rdb, limit: limit, ttl: 2 * time.Minute}
}

func (l *RedisExportLimiter) Acquire(ctx context.Context, userID int64) (func(), bool, error) {
	key := fmt.Sprintf("exports:inflight:%d", userID)
	ok, err := utils.AcquireConcurrencyCap(ctx, l.rdb, key, l.limit, l.ttl)
	if err != nil || !ok {
		return func() {}, ok, err
	}
	return func() {
		// The request context may already be done; release on a fresh one.
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := utils.ReleaseConcurrencyCap(rctx, l.rdb, key); err != nil {
			logger.From(ctx).Warn("release export slot failed", "user_id", userID, "err", err)
		}
	}, true, nil
}
