package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache holds TTL'd JSON snapshots of provider data so the API serves hot
// reads without a provider round trip.
type Cache struct {
	R   *redis.Client
	TTL time.Duration
}

func New(r *redis.Client, ttl time.Duration) *Cache { return &Cache{R: r, TTL: ttl} }

func keyScores(weekendID string) string { return "scores:weekend:" + weekendID }
func keyOdds(gameID string) string      { return "odds:game:" + gameID }

func (c *Cache) GetScores(ctx context.Context, weekendID string, dst any) (bool, error) {
	return c.get(ctx, keyScores(weekendID), dst)
}

func (c *Cache) SetScores(ctx context.Context, weekendID string, v any) error {
	return c.set(ctx, keyScores(weekendID), v)
}

func (c *Cache) GetOdds(ctx context.Context, gameID string, dst any) (bool, error) {
	return c.get(ctx, keyOdds(gameID), dst)
}

func (c *Cache) SetOdds(ctx context.Context, gameID string, v any) error {
	return c.set(ctx, keyOdds(gameID), v)
}

func (c *Cache) get(ctx context.Context, key string, dst any) (bool, error) {
	b, err := c.R.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, dst)
}

func (c *Cache) set(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.R.Set(ctx, key, b, c.TTL).Err()
}
