package services

import (
	"catering-backend/availability"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OccupiedCache holds the occupied-date set between booking writes.
// Every Invalidate bumps a generation. Set only stores a set loaded under
// the generation it was given, so a read that raced a write is dropped.
type OccupiedCache interface {
	Get(ctx context.Context) (availability.Set, bool, error)
	Generation(ctx context.Context) (int64, error)
	Set(ctx context.Context, generation int64, set availability.Set) error
	Invalidate(ctx context.Context) error
}

const (
	occupiedCacheKey      = "availability:occupied"
	occupiedGenerationKey = "availability:occupied:gen"
)

type RedisOccupiedCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

func NewRedisOccupiedCache(client *redis.Client, ttl time.Duration) *RedisOccupiedCache {
	return &RedisOccupiedCache{client: client, ttl: ttl}
}

func (c *RedisOccupiedCache) Get(ctx context.Context) (availability.Set, bool, error) {
	raw, err := c.client.Get(ctx, occupiedCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var keys []string
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, false, fmt.Errorf("decode occupied dates: %w", err)
	}
	set := make(availability.Set, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set, true, nil
}

func (c *RedisOccupiedCache) Generation(ctx context.Context) (int64, error) {
	return readGeneration(ctx, c.client)
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, cmd stringGetter) (int64, error) {
	gen, err := cmd.Get(ctx, occupiedGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Set stores the set unless the generation moved since it was read.
func (c *RedisOccupiedCache) Set(ctx context.Context, generation int64, set availability.Set) error {
	raw, err := json.Marshal(set.Sorted())
	if err != nil {
		return err
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx)
		if err != nil {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, occupiedCacheKey, raw, c.ttl)
			return nil
		})
		return err
	}, occupiedGenerationKey)
	if errors.Is(err, redis.TxFailedErr) {
		// An invalidation landed mid-write.
		return nil
	}
	return err
}

func (c *RedisOccupiedCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, occupiedGenerationKey)
		pipe.Del(ctx, occupiedCacheKey)
		return nil
	})
	return err
}

// NoopOccupiedCache is used when no redis address is configured.
type NoopOccupiedCache struct{}

func (NoopOccupiedCache) Get(context.Context) (availability.Set, bool, error) { return nil, false, nil }
func (NoopOccupiedCache) Generation(context.Context) (int64, error)           { return 0, nil }
func (NoopOccupiedCache) Set(context.Context, int64, availability.Set) error  { return nil }
func (NoopOccupiedCache) Invalidate(context.Context) error                    { return nil }
