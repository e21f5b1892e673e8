package rpc

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
)

// EncodeAll is safe for concurrent use, so one encoder serves every request.
var zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))

// ZstdMiddleware decompresses zstd request bodies and compresses responses
// for clients that accept zstd. Whitelisted routes pass through untouched.
// A body that inflates past maxBodySize is rejected with 413, so the
// server body limit holds for compressed requests too.
func ZstdMiddleware(whitelistedRoutes []string, maxBodySize int) fiber.Handler {
	if maxBodySize <= 0 {
		maxBodySize = DefaultBodyLimit
	}
	// options are valid for any positive size
	decoder, _ := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(uint64(maxBodySize)))

	return func(c *fiber.Ctx) error {
		if slices.Contains(whitelistedRoutes, c.Path()) {
			return c.Next()
		}

		if strings.EqualFold(c.Get(fiber.HeaderContentEncoding), "zstd") {
			if body := c.Body(); len(body) > 0 {
				decompressed, err := decoder.DecodeAll(body, nil)
				if errors.Is(err, zstd.ErrDecoderSizeExceeded) || (err == nil && len(decompressed) > maxBodySize) {
					log.Warn().
						Int("compressed_size", len(body)).
						Int("limit", maxBodySize).
						Msg("Decompressed request exceeds body limit")
					return c.Status(fiber.StatusRequestEntityTooLarge).JSON(
						createResponse(
							map[string]interface{}{},
							fmt.Errorf("decompressed body exceeds %d bytes", maxBodySize),
						))
				}
				if err != nil {
					log.Err(err).Msg("Failed to decompress request")
					return c.Status(fiber.StatusBadRequest).JSON(
						createResponse(
							map[string]interface{}{},
							fmt.Errorf("failed to decompress zstd data: %w", err),
						))
				}
				c.Request().SetBody(decompressed)
				c.Request().Header.Del(fiber.HeaderContentEncoding)
				log.Trace().
					Int("compressed_size", len(body)).
					Int("size", len(decompressed)).
					Msg("Request body decompressed")
			}
		}

		if err := c.Next(); err != nil {
			return err
		}

		if !strings.Contains(strings.ToLower(c.Get(fiber.HeaderAcceptEncoding)), "zstd") {
			return nil
		}

		responseBody := c.Response().Body()
		if len(responseBody) == 0 {
			return nil
		}

		compressed := zstdEncoder.EncodeAll(responseBody, nil)
		c.Response().SetBody(compressed)
		c.Set(fiber.HeaderContentEncoding, "zstd")
		c.Set(fiber.HeaderContentLength, strconv.Itoa(len(compressed)))

		log.Trace().
			Int("original_size", len(responseBody)).
			Int("compressed_size", len(compressed)).
			Msg("Response body compressed")

		return nil
	}
}
