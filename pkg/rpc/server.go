// Package rpc is a small JSON-over-HTTP transport. Every request type is
// served on POST /<TypeName>, bodies may be zstd compressed, and responses
// are wrapped in a StdResponse envelope.
package rpc

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
)

// NewServer creates a new messaging server
func NewServer(serverConfig *ServerConfig) *Server {
	if serverConfig == nil {
		serverConfig = &ServerConfig{}
	}
	if serverConfig.Host == "" {
		serverConfig.Host = DefaultServerHost
	}
	if serverConfig.Port == 0 {
		serverConfig.Port = DefaultServerPort
	}
	if serverConfig.BodyLimit == 0 {
		serverConfig.BodyLimit = DefaultBodyLimit
	}

	log.Info().
		Str("host", serverConfig.Host).
		Int("port", serverConfig.Port).
		Int("body_limit", serverConfig.BodyLimit).
		Msg("Server configuration loaded")

	app := fiber.New(fiber.Config{
		Prefork:               false,
		DisableStartupMessage: true,
		ErrorHandler:          fiberErrHandler,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		BodyLimit:             serverConfig.BodyLimit,
	})

	app.Use(recover.New()) // add panic recovery
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))
	app.Use(ZstdMiddleware([]string{HealthRoute}, serverConfig.BodyLimit))

	app.Get(HealthRoute, func(c *fiber.Ctx) error {
		return c.JSON(createResponse(HealthResponse{Status: "ok"}, nil))
	})

	return &Server{
		App:    app,
		config: serverConfig,
	}
}

func fiberErrHandler(ctx *fiber.Ctx, err error) error {
	// Status code defaults to 500
	code := fiber.StatusInternalServerError

	// Retrieve the custom status code if it's a *fiber.Error
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	log.Error().
		Err(err).
		Int("status_code", code).
		Str("path", ctx.Path()).
		Str("method", ctx.Method()).
		Msg("Fiber error handler triggered")

	return ctx.Status(code).JSON(createResponse(map[string]interface{}{}, err))
}

func (s *Server) errorStatus(err error) int {
	if s.config.ErrorStatus == nil {
		return fiber.StatusInternalServerError
	}
	return s.config.ErrorStatus(err)
}

// ServeRoute registers handler on POST /<name of Req>.
func ServeRoute[Req, Resp any](s *Server, handler RouterHandler[Req, Resp]) {
	route := RouteFor[Req]()

	s.App.Post(route, func(c *fiber.Ctx) error {
		var req Req
		if err := c.BodyParser(&req); err != nil {
			log.Error().
				Err(err).
				Str("route", route).
				Msg("Failed to parse request body")
			return c.Status(fiber.StatusBadRequest).
				JSON(createResponse(map[string]interface{}{}, err))
		}

		resp, err := handler(c, req)
		if err != nil {
			status := s.errorStatus(err)
			log.Error().
				Err(err).
				Str("route", route).
				Int("status_code", status).
				Msg("Handler returned error")
			var zero Resp
			return c.Status(status).JSON(createResponse(zero, err))
		}

		return c.JSON(createResponse(resp, nil))
	})

	log.Debug().Str("route", route).Msg("Route registered")
}

func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// Start blocks serving on the configured address.
func (s *Server) Start() error {
	log.Info().Str("addr", s.Addr()).Msg("Server starting")
	return s.App.Listen(s.Addr())
}

func (s *Server) Shutdown() error {
	return s.App.Shutdown()
}
