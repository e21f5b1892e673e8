// Package redis provides a Redis client used as the result cache
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"

	"github.com/mikemahoney218/waywiserrr/internal/config"
)

type Redis struct {
	client rueidis.Client
}

func NewRedis(cfg *config.RedisEnvConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config is nil")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort)},
		Username:    cfg.RedisUsername,
		Password:    cfg.RedisPassword,
		SelectDB:    cfg.RedisDB,
	})
	if err != nil {
		return nil, err
	}

	return &Redis{client: client}, nil
}

// Get returns "" without error when the key does not exist.
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	resp := r.client.Do(ctx, r.client.B().Get().Key(key).Build())
	if err := resp.Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return "", nil
		}
		return "", err
	}
	return resp.ToString()
}

// Set stores value under key. A ttl <= 0 stores it without expiry.
func (r *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl > 0 {
		return r.client.Do(ctx, r.client.B().Set().Key(key).Value(value).Ex(ttl).Build()).Error()
	}
	return r.client.Do(ctx, r.client.B().Set().Key(key).Value(value).Build()).Error()
}

func (r *Redis) Close() {
	r.client.Close()
}
