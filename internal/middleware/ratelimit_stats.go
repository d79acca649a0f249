package middleware

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateEvent is one rate limit decision.
type RateEvent struct {
	Key     string
	Allowed bool
	Method  string
	Route   string
	At      time.Time
}

// RateStats records decisions. Recording is best effort.
type RateStats interface {
	Record(ctx context.Context, ev RateEvent) error
}

// RedisRateStats keeps cumulative, per-minute and per-route counters in redis hashes.
type RedisRateStats struct {
	rdb    redis.Cmdable
	prefix string
	// ttl applies to the per-minute buckets only; totals never expire.
	ttl time.Duration
}

func NewRedisRateStats(rdb redis.Cmdable, prefix string, ttl time.Duration) *RedisRateStats {
	prefix = strings.Trim(prefix, ":")
	if prefix == "" {
		prefix = "ratelimit:stats"
	}
	return &RedisRateStats{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *RedisRateStats) Record(ctx context.Context, ev RateEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	field := "denied"
	if ev.Allowed {
		field = "allowed"
	}

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, s.prefix+":total", field, 1)

	bucketKey := fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504"))
	pipe.HIncrBy(ctx, bucketKey, field, 1)
	if s.ttl > 0 {
		pipe.Expire(ctx, bucketKey, s.ttl)
	}

	if route := strings.TrimSpace(ev.Method + " " + ev.Route); route != "" {
		pipe.HIncrBy(ctx, s.prefix+":route", route+":"+field, 1)
	}

	_, err := pipe.Exec(ctx)
	return err
}
