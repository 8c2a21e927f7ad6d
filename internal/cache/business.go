// Package cache keeps rendered business pages in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"adspace-chat/internal/dto"
)

var ErrMiss = errors.New("cache miss")

const keyPrefix = "adspace:business:"

func businessKey(businessID int) string {
	return keyPrefix + strconv.Itoa(businessID)
}

// RedisBusinessCache stores business details as JSON with a fixed TTL.
type RedisBusinessCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisBusinessCache(client redis.UniversalClient, ttl time.Duration) *RedisBusinessCache {
	return &RedisBusinessCache{client: client, ttl: ttl}
}

// NewRedisClient parses a redis:// URL.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}

func (c *RedisBusinessCache) Get(ctx context.Context, businessID int) (dto.BusinessDetail, error) {
	raw, err := c.client.Get(ctx, businessKey(businessID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return dto.BusinessDetail{}, ErrMiss
	}
	if err != nil {
		return dto.BusinessDetail{}, err
	}

	var detail dto.BusinessDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		// A value from an older layout is treated as absent.
		return dto.BusinessDetail{}, ErrMiss
	}
	return detail, nil
}

func (c *RedisBusinessCache) Set(ctx context.Context, businessID int, detail dto.BusinessDetail) error {
	raw, err := json.Marshal(detail)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, businessKey(businessID), raw, c.ttl).Err()
}

func (c *RedisBusinessCache) Delete(ctx context.Context, businessID int) error {
	return c.client.Del(ctx, businessKey(businessID)).Err()
}

// NoopBusinessCache always misses.
type NoopBusinessCache struct{}

func NewNoopBusinessCache() NoopBusinessCache {
	return NoopBusinessCache{}
}

func (NoopBusinessCache) Get(context.Context, int) (dto.BusinessDetail, error) {
	return dto.BusinessDetail{}, ErrMiss
}

func (NoopBusinessCache) Set(context.Context, int, dto.BusinessDetail) error {
	return nil
}

func (NoopBusinessCache) Delete(context.Context, int) error {
	return nil
}
