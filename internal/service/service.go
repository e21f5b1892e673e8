// Package service exposes the spatial and agreement statistics over the rpc
// transport.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cespare/xxhash/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/mikemahoney218/waywiserrr/internal/agreement"
	"github.com/mikemahoney218/waywiserrr/internal/spatial"
	"github.com/mikemahoney218/waywiserrr/pkg/rpc"
)

// Cache stores encoded responses. Get returns "" on a miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type Service struct {
	workers     int
	cache       Cache
	cacheTTL    time.Duration
	cachePrefix string
}

type Option func(*Service)

// WithWorkers bounds the goroutines of one distance computation.
func WithWorkers(n int) Option {
	return func(s *Service) {
		s.workers = n
	}
}

// WithCache serves repeated distance requests from cache.
func WithCache(cache Cache, ttl time.Duration, prefix string) Option {
	return func(s *Service) {
		s.cache = cache
		s.cacheTTL = ttl
		s.cachePrefix = prefix
	}
}

func New(opts ...Option) *Service {
	s := &Service{cachePrefix: "waywiserrr"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register binds every statistic to its route on server.
func (s *Service) Register(server *rpc.Server) {
	rpc.ServeRoute(server, func(c *fiber.Ctx, req DBarRequest) (DBarResponse, error) {
		return s.DBar(c.UserContext(), req)
	})
	rpc.ServeRoute(server, func(c *fiber.Ctx, req MinDistsRequest) (MinDistsResponse, error) {
		return s.MinDists(c.UserContext(), req)
	})
	rpc.ServeRoute(server, func(_ *fiber.Ctx, req GMFRRequest) (agreement.Fit, error) {
		return agreement.GMFR(req.Truth, req.Estimate, req.Sign)
	})
	rpc.ServeRoute(server, func(_ *fiber.Ctx, req SSDRequest) (StatisticResponse, error) {
		return statistic(agreement.SSD(req.Truth, req.Estimate))
	})
	rpc.ServeRoute(server, func(_ *fiber.Ctx, req SPODRequest) (StatisticResponse, error) {
		return statistic(agreement.SPOD(req.Truth, req.Estimate))
	})
	rpc.ServeRoute(server, func(_ *fiber.Ctx, req SPDURequest) (StatisticResponse, error) {
		return statistic(agreement.SPDU(req.Truth, req.Estimate, req.Sign))
	})
	rpc.ServeRoute(server, func(_ *fiber.Ctx, req SPDSRequest) (StatisticResponse, error) {
		return statistic(agreement.SPDS(req.Truth, req.Estimate, req.Sign))
	})
	rpc.ServeRoute(server, func(_ *fiber.Ctx, req AgreementRequest) (agreement.Report, error) {
		return s.Agreement(req)
	})
}

func (s *Service) DBar(ctx context.Context, req DBarRequest) (DBarResponse, error) {
	return cached(ctx, s, req, func() (DBarResponse, error) {
		points, err := toDense(req.Points)
		if err != nil {
			return DBarResponse{}, err
		}
		dBar, err := spatial.MeanDistance(points, spatial.WithWorkers(s.workers))
		if err != nil {
			return DBarResponse{}, err
		}
		return DBarResponse{DBar: dBar}, nil
	})
}

func (s *Service) MinDists(ctx context.Context, req MinDistsRequest) (MinDistsResponse, error) {
	return cached(ctx, s, req, func() (MinDistsResponse, error) {
		data, err := toDense(req.Data)
		if err != nil {
			return MinDistsResponse{}, fmt.Errorf("data: %w", err)
		}
		query, err := toDense(req.Query)
		if err != nil {
			return MinDistsResponse{}, fmt.Errorf("query: %w", err)
		}
		dists, err := spatial.NearestDistances(data, query, req.Distinct, spatial.WithWorkers(s.workers))
		if err != nil {
			return MinDistsResponse{}, err
		}
		return MinDistsResponse{MinDists: toDistances(dists)}, nil
	})
}

func (s *Service) Agreement(req AgreementRequest) (agreement.Report, error) {
	opt := agreement.WithCorrelationSign()
	if req.Sign != nil {
		opt = agreement.WithSign(*req.Sign)
	}
	return agreement.NewPipeline(opt).Process(req.Truth, req.Estimate)
}

func statistic(v float64, err error) (StatisticResponse, error) {
	if err != nil {
		return StatisticResponse{}, err
	}
	return StatisticResponse{Value: v}, nil
}

// ErrorStatus reports contract violations and degenerate inputs as 400.
func ErrorStatus(err error) int {
	for _, target := range []error{
		spatial.ErrDimensionMismatch,
		spatial.ErrDegenerateInput,
		agreement.ErrLengthMismatch,
		agreement.ErrInvalidSign,
		agreement.ErrDegenerateInput,
	} {
		if errors.Is(err, target) {
			return fiber.StatusBadRequest
		}
	}
	return fiber.StatusInternalServerError
}

// cached wraps compute with a cache lookup keyed by the encoded request.
// Cache failures are logged and never fail the request.
func cached[Req, Resp any](ctx context.Context, s *Service, req Req, compute func() (Resp, error)) (Resp, error) {
	if s.cache == nil {
		return compute()
	}

	key, err := s.cacheKey(req)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to build cache key")
		return compute()
	}

	if hit, err := s.cache.Get(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache lookup failed")
	} else if hit != "" {
		var resp Resp
		if err := sonic.UnmarshalString(hit, &resp); err == nil {
			log.Debug().Str("key", key).Msg("Cache hit")
			return resp, nil
		}
		log.Warn().Err(err).Str("key", key).Msg("Discarding undecodable cache entry")
	}

	resp, err := compute()
	if err != nil {
		return resp, err
	}

	encoded, err := sonic.MarshalString(resp)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to encode cache entry")
		return resp, nil
	}
	if err := s.cache.Set(ctx, key, encoded, s.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache store failed")
	}

	return resp, nil
}

func (s *Service) cacheKey(req any) (string, error) {
	raw, err := sonic.Marshal(req)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("%T", req)
	name = name[strings.LastIndex(name, ".")+1:]
	return fmt.Sprintf("%s:%s:%016x", s.cachePrefix, name, xxhash.Sum64(raw)), nil
}
