package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/mikemahoney218/waywiserrr/internal/config"
	"github.com/mikemahoney218/waywiserrr/internal/service"
	"github.com/mikemahoney218/waywiserrr/internal/utils/logger"
	"github.com/mikemahoney218/waywiserrr/internal/utils/redis"
	"github.com/mikemahoney218/waywiserrr/pkg/rpc"
)

var _ service.Cache = (*redis.Redis)(nil)

func main() {
	logger.Init()
	log.Info().Msg("Starting waywiserrr server...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load environment configuration")
	}

	opts := []service.Option{service.WithWorkers(cfg.Workers)}
	if cfg.CacheEnabled {
		r, err := redis.NewRedis(&cfg.RedisEnvConfig)
		if err != nil {
			log.Error().Err(err).Msg("failed to init redis client, continuing without cache")
		} else {
			defer r.Close()
			opts = append(opts, service.WithCache(r, cfg.CacheTTL, cfg.CachePrefix))
			log.Info().Dur("ttl", cfg.CacheTTL).Str("prefix", cfg.CachePrefix).Msg("result cache enabled")
		}
	}

	server := rpc.NewServer(&rpc.ServerConfig{
		Host:        cfg.Address,
		Port:        cfg.Port,
		BodyLimit:   cfg.BodySizeLimit,
		ErrorStatus: service.ErrorStatus,
	})
	service.New(opts...).Register(server)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("shutdown signal received, stopping server")
		if err := server.Shutdown(); err != nil {
			log.Error().Err(err).Msg("failed to shut down server")
		}
	}()

	if err := server.Start(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}
