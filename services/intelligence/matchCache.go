package intelligence

import (
	"context"
	"encoding/json"
	"time"

	"cleanslate/models"

	"github.com/go-redis/redis/v8"
)

const matchCachePrefix = "match:"

// MatchCache remembers match results by request fingerprint.
type MatchCache interface {
	Get(ctx context.Context, key string) (*models.MatchResult, bool, error)
	Set(ctx context.Context, key string, result *models.MatchResult) error
}

type RedisMatchCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisMatchCache(client *redis.Client, ttl time.Duration) *RedisMatchCache {
	return &RedisMatchCache{client: client, ttl: ttl}
}

func (c *RedisMatchCache) Get(ctx context.Context, key string) (*models.MatchResult, bool, error) {
	data, err := c.client.Get(ctx, matchCachePrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var result models.MatchResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false, err
	}
	return &result, true, nil
}

func (c *RedisMatchCache) Set(ctx context.Context, key string, result *models.MatchResult) error {
	b, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, matchCachePrefix+key, b, c.ttl).Err()
}
