package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const reportTTL = 30 * time.Second

// ReportCache keeps the paid-boost aggregates (/paid/total, /paid/count) in
// Redis for a short window. Every Redis failure is treated as a miss so the
// database remains the source of truth. A nil ReportCache is a no-op.
type ReportCache struct {
	client *redis.Client
}

func NewReportCache(redisURL string) *ReportCache {
	if redisURL == "" {
		return nil
	}
	return &ReportCache{
		client: redis.NewClient(&redis.Options{Addr: redisURL}),
	}
}

func NewReportCacheWithClient(client *redis.Client) *ReportCache {
	return &ReportCache{client: client}
}

// TotalKey and CountKey derive the cache key for an aggregate, where day is
// the yyyy-mm-dd filter or "all".
func TotalKey(day string) string { return fmt.Sprintf("boosts:paid:total:%s", day) }
func CountKey(day string) string { return fmt.Sprintf("boosts:paid:count:%s", day) }

func (c *ReportCache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *ReportCache) Set(ctx context.Context, key, value string) {
	if c == nil {
		return
	}
	c.client.Set(ctx, key, value, reportTTL)
}
