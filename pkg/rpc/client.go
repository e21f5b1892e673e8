package rpc

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-envconfig"
)

// ClientConfig is read from the environment by LoadClientConfig.
type ClientConfig struct {
	Timeout         time.Duration `env:"CLIENT_TIMEOUT, default=30s"`
	ZstdCompression bool          `env:"CLIENT_ZSTD, default=true"`
	ReadyRetries    int           `env:"CLIENT_READY_RETRIES, default=5"`
}

func LoadClientConfig(ctx context.Context) (*ClientConfig, error) {
	var cfg ClientConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process client environment: %w", err)
	}
	return &cfg, nil
}

type Client struct {
	config      *ClientConfig
	restyClient *resty.Client
	encoder     *zstd.Encoder
	decoder     *zstd.Decoder
}

// NewClient creates a new client. A nil config is loaded from the
// environment.
func NewClient(config *ClientConfig) (*Client, error) {
	if config == nil {
		loaded, err := LoadClientConfig(context.Background())
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	if config.Timeout == 0 {
		config.Timeout = DefaultClientTimeout
	}
	if config.ReadyRetries == 0 {
		config.ReadyRetries = DefaultReadyRetries
	}

	restyClient := resty.New().
		SetTimeout(config.Timeout).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		SetHeader("Content-Type", "application/json")

	client := &Client{
		config:      config,
		restyClient: restyClient,
	}

	if config.ZstdCompression {
		restyClient.SetHeader("Accept-Encoding", "zstd")

		encoder, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
		}
		client.encoder = encoder

		decoder, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
		}
		client.decoder = decoder
	}

	log.Debug().
		Dur("timeout", config.Timeout).
		Bool("zstd", config.ZstdCompression).
		Msg("Client initialized")

	return client, nil
}

// Close cleans up client resources
func (c *Client) Close() {
	if c.encoder != nil {
		c.encoder.Close()
	}
	if c.decoder != nil {
		c.decoder.Close()
	}
}

// Send posts req to the route of its type on baseURL and unwraps the
// StdResponse. Errors reported by the server come back as *ServerError.
func Send[Req, Resp any](ctx context.Context, c *Client, baseURL string, req Req) (Resp, error) {
	var zero Resp
	url := endpoint(baseURL, RouteFor[Req]())

	body, err := sonic.Marshal(req)
	if err != nil {
		return zero, fmt.Errorf("failed to marshal request: %w", err)
	}

	r := c.restyClient.R().SetContext(ctx)
	if c.encoder != nil {
		body = c.encoder.EncodeAll(body, nil)
		r.SetHeader("Content-Encoding", "zstd")
	}

	log.Trace().Str("endpoint", url).Int("size", len(body)).Msg("Sending request")

	resp, err := r.SetBody(body).Post(url)
	if err != nil {
		return zero, fmt.Errorf("failed to make request: %w", err)
	}

	responseBody := resp.Body()
	if c.decoder != nil && resp.Header().Get("Content-Encoding") == "zstd" {
		responseBody, err = c.decoder.DecodeAll(responseBody, nil)
		if err != nil {
			return zero, fmt.Errorf("failed to decompress response: %w", err)
		}
	}

	var std StdResponse[Resp]
	if err := sonic.Unmarshal(responseBody, &std); err != nil {
		if resp.IsError() {
			return zero, fmt.Errorf("HTTP error %d: %s", resp.StatusCode(), string(responseBody))
		}
		return zero, fmt.Errorf("failed to unmarshal StdResponse: %w", err)
	}

	if std.Error != nil {
		return zero, &ServerError{StatusCode: resp.StatusCode(), Message: *std.Error}
	}
	if resp.IsError() {
		return zero, fmt.Errorf("HTTP error %d: %s", resp.StatusCode(), string(responseBody))
	}

	return std.Body, nil
}

// SendMany sends every request concurrently. The returned slices line up
// with requests; a failed request leaves its response at the zero value.
func SendMany[Req, Resp any](ctx context.Context, c *Client, baseURL string, requests []Req) ([]Resp, []error) {
	responses := make([]Resp, len(requests))
	errs := make([]error, len(requests))

	var wg sync.WaitGroup
	wg.Add(len(requests))
	for i, req := range requests {
		go func() {
			defer wg.Done()
			resp, err := Send[Req, Resp](ctx, c, baseURL, req)
			if err != nil {
				errs[i] = fmt.Errorf("error in request %d: %w", i, err)
				return
			}
			responses[i] = resp
		}()
	}
	wg.Wait()

	return responses, errs
}

// WaitReady polls the health route of baseURL, backing off between
// attempts, until it answers 200 or the retries run out.
func (c *Client) WaitReady(ctx context.Context, baseURL string) error {
	client := retryablehttp.NewClient()
	client.RetryMax = c.config.ReadyRetries
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.HTTPClient.Timeout = c.config.Timeout
	client.Logger = nil

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint(baseURL, HealthRoute), nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("server not ready: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server not ready: health returned %d", resp.StatusCode)
	}

	log.Debug().Str("base_url", baseURL).Msg("Server is ready")
	return nil
}
