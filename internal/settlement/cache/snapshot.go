package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wrosen/huddlebook/internal/settlement"
)

// Snapshot stores the last computed settlement per weekend. The engine is a
// pure function of the bet set, so a stale snapshot is only ever stale, never
// wrong for its input; the worker refreshes it on every bet_resolved event.
type Snapshot struct {
	R   *redis.Client
	TTL time.Duration
}

func New(r *redis.Client, ttl time.Duration) *Snapshot { return &Snapshot{R: r, TTL: ttl} }

func key(weekendID string) string { return "settlement:weekend:" + weekendID }

func (s *Snapshot) Get(ctx context.Context, weekendID string) (*settlement.Result, bool, error) {
	b, err := s.R.Get(ctx, key(weekendID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var res settlement.Result
	if err := json.Unmarshal(b, &res); err != nil {
		return nil, false, err
	}
	return &res, true, nil
}

func (s *Snapshot) Set(ctx context.Context, res *settlement.Result) error {
	b, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return s.R.Set(ctx, key(res.WeekendID), b, s.TTL).Err()
}

func (s *Snapshot) Invalidate(ctx context.Context, weekendID string) error {
	return s.R.Del(ctx, key(weekendID)).Err()
}
