package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

type CacheService interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string, dest any) error
	Delete(ctx context.Context, key string) error
	DeletePattern(ctx context.Context, pattern string) error
}

const keyPrefix = "conference-service:"

type redisCache struct {
	client *redis.Client
	logger *slog.Logger
}

func NewRedisCache(client *redis.Client, logger *slog.Logger) CacheService {
	return &redisCache{
		client: client,
		logger: logger,
	}
}

func (r *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return r.client.Set(ctx, keyPrefix+key, data, ttl).Err()
}

func (r *redisCache) Get(ctx context.Context, key string, dest any) error {
	data, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (r *redisCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, keyPrefix+key).Err()
}

func (r *redisCache) DeletePattern(ctx context.Context, pattern string) error {
	iter := r.client.Scan(ctx, 0, keyPrefix+pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	r.logger.Debug("Invalidating cache keys", "pattern", pattern, "count", len(keys))
	return r.client.Del(ctx, keys...).Err()
}

// noopCache is used when Redis is not configured; every Get misses.
type noopCache struct{}

func NewNoopCache() CacheService {
	return noopCache{}
}

func (noopCache) Set(context.Context, string, any, time.Duration) error { return nil }
func (noopCache) Get(context.Context, string, any) error                { return ErrCacheMiss }
func (noopCache) Delete(context.Context, string) error                  { return nil }
func (noopCache) DeletePattern(context.Context, string) error           { return nil }
