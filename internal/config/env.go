// Package config defines environment configuration structs and loaders.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type AppConfig struct {
	ServerEnvConfig
	ComputeEnvConfig
	RedisEnvConfig
	CacheEnvConfig
	Environment string `env:"ENVIRONMENT" envDefault:"prod"`
}

func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ServerEnvConfig configures the server.
type ServerEnvConfig struct {
	Address       string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port          int    `env:"SERVER_PORT" envDefault:"8888"`
	BodySizeLimit int    `env:"SERVER_BODY_LIMIT" envDefault:"33554432"`
}

// ComputeEnvConfig bounds the goroutines used by a single distance call.
// Zero means GOMAXPROCS.
type ComputeEnvConfig struct {
	Workers int `env:"COMPUTE_WORKERS" envDefault:"0"`
}

// RedisEnvConfig configures Redis connection.
type RedisEnvConfig struct {
	RedisHost     string `env:"REDIS_HOST" envDefault:"127.0.0.1"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisUsername string `env:"REDIS_USERNAME"`
}

// CacheEnvConfig controls the distance result cache.
type CacheEnvConfig struct {
	CacheEnabled bool          `env:"CACHE_ENABLED" envDefault:"false"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"1h"`
	CachePrefix  string        `env:"CACHE_PREFIX" envDefault:"waywiserrr"`
}
