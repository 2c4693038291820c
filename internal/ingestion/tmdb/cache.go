package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const configurationKey = "tmdb:configuration"

// ConfigurationCache stores the catalog image configuration between detail fetches.
// Get returns (nil, nil) on a miss.
type ConfigurationCache interface {
	Get(ctx context.Context) (*Configuration, error)
	Set(ctx context.Context, cfg *Configuration) error
}

type RedisConfigurationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisConfigurationCache connects to redisURL (redis://host:port/db) and verifies the connection
func NewRedisConfigurationCache(redisURL string, ttl time.Duration) (*RedisConfigurationCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisConfigurationCache{client: rdb, ttl: ttl}, nil
}

func (r *RedisConfigurationCache) Get(ctx context.Context) (*Configuration, error) {
	if r == nil || r.client == nil {
		// no-op when Redis is not configured
		return nil, nil
	}

	raw, err := r.client.Get(ctx, configurationKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Configuration
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("decode cached configuration: %w", err)
	}
	return &cfg, nil
}

func (r *RedisConfigurationCache) Set(ctx context.Context, cfg *Configuration) error {
	if r == nil || r.client == nil {
		return nil
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, configurationKey, raw, r.ttl).Err()
}

func (r *RedisConfigurationCache) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}
