package rpc

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	HealthRoute = "/health"

	// Server defaults
	DefaultServerHost = "0.0.0.0"
	DefaultServerPort = 8888
	DefaultBodyLimit  = 32 * 1024 * 1024 // 32MB, point sets are large

	// Client defaults
	DefaultClientTimeout = 30 * time.Second
	DefaultReadyRetries  = 5
)

// Server represents the messaging server
type Server struct {
	App    *fiber.App
	config *ServerConfig
}

type ServerConfig struct {
	Host      string
	Port      int
	BodyLimit int
	// ErrorStatus maps a handler error to an HTTP status. Nil means every
	// handler error is a 500.
	ErrorStatus func(error) int
}

// StdResponse represents the standardized response structure
type StdResponse[T any] struct {
	Body  T       `json:"body"`
	Error *string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// RouterHandler handles one decoded request of type Req.
type RouterHandler[Req, Resp any] func(*fiber.Ctx, Req) (Resp, error)

// ServerError is an error reported by the server inside a StdResponse.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}
