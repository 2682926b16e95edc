package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is an optional read-through cache for computed reports, keyed by
// country filter. The dashboard polls the analytics endpoint, so even a
// short TTL removes most of the repeated full scans.
type Cache interface {
	GetReport(ctx context.Context, key string) (Report, bool, error)
	SetReport(ctx context.Context, key string, rep Report, ttl time.Duration) error
}

// RedisCache stores serialized reports in Redis.
type RedisCache struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb, prefix: "analytics:report:"}
}

func (c *RedisCache) GetReport(ctx context.Context, key string) (Report, bool, error) {
	raw, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Report{}, false, nil
		}
		return Report{}, false, err
	}
	var rep Report
	if err := json.Unmarshal(raw, &rep); err != nil {
		// A corrupt entry is a miss, not a failure.
		return Report{}, false, nil
	}
	return rep, true, nil
}

func (c *RedisCache) SetReport(ctx context.Context, key string, rep Report, ttl time.Duration) error {
	raw, err := json.Marshal(rep)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.prefix+key, raw, ttl).Err()
}
