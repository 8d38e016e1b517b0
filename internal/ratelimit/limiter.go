package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/community-hub/pkg/logger"
)

// Result 单次限流判定
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter 基于 redis sorted set 的滑动窗口限流器。
// 每个 key 一个 zset，member 唯一、score 为时间戳纳秒；
// 判定 = 清理窗口外成员 + 计数 + 写入本次，pipeline 一轮完成。
type Limiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

func New(rdb *redis.Client, prefix string, limit int, window time.Duration) *Limiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{rdb: rdb, limit: limit, window: window, prefix: prefix}
}

// Check 判定 identifier 当前是否放行。
// redis 不可用时放行（fail-open）：限流是保护手段，不能成为单点。
func (l *Limiter) Check(ctx context.Context, identifier string) Result {
	now := time.Now()
	key := fmt.Sprintf("ratelimit:%s:%s", l.prefix, identifier)
	windowStart := now.Add(-l.window)

	pipe := l.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixNano()))
	countCmd := pipe.ZCard(ctx, key)
	oldestCmd := pipe.ZRangeWithScores(ctx, key, 0, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warn("rate limiter backend unavailable, failing open",
			zap.String("key", key), zap.Error(err))
		return Result{Allowed: true, Remaining: l.limit, ResetAt: now.Add(l.window)}
	}

	count := int(countCmd.Val())
	resetAt := now.Add(l.window)
	if pairs := oldestCmd.Val(); len(pairs) > 0 {
		oldest := time.Unix(0, int64(pairs[0].Score))
		resetAt = oldest.Add(l.window)
	}

	if count >= l.limit {
		return Result{Allowed: false, Remaining: 0, ResetAt: resetAt}
	}

	// 放行才计入本次请求
	member := fmt.Sprintf("%d-%s", now.UnixNano(), uuid.New().String())
	pipe = l.rdb.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: member})
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warn("rate limiter record failed, failing open",
			zap.String("key", key), zap.Error(err))
	}

	return Result{Allowed: true, Remaining: l.limit - count - 1, ResetAt: resetAt}
}
