package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/tripplanner/internal/providers"
)

// Cache stores provider results keyed by the canonical query hash.
type Cache interface {
	Get(ctx context.Context, queryHash uint64) (*providers.SearchResult, bool)
	Set(ctx context.Context, queryHash uint64, result *providers.SearchResult) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     "localhost",
		Port:     "6379",
		Password: "",
		DB:       0,
		TTL:      5 * time.Minute,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func cacheKey(queryHash uint64) string {
	return fmt.Sprintf("tripplanner:query:%016x", queryHash)
}

func (c *RedisCache) Get(ctx context.Context, queryHash uint64) (*providers.SearchResult, bool) {
	data, err := c.client.Get(ctx, cacheKey(queryHash)).Bytes()
	if err != nil {
		return nil, false
	}

	var result providers.SearchResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}

	return &result, true
}

func (c *RedisCache) Set(ctx context.Context, queryHash uint64, result *providers.SearchResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, cacheKey(queryHash), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, queryHash uint64) (*providers.SearchResult, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, queryHash uint64, result *providers.SearchResult) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}
