package middleware

import (
	"time"

	"github.com/bilgisen/daoexplorer/internal/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// LoggerConfig defines the config for the logger middleware
type LoggerConfig struct {
	// Skip defines a function to skip middleware.
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool

	// Logger is the zerolog logger instance to use.
	// If not provided, the default logger will be used.
	Logger *zerolog.Logger
}

// NewLogger logs one line per request with method, path, status, ip,
// latency and request id. 5xx responses are logged at error level.
func NewLogger(config ...LoggerConfig) fiber.Handler {
	cfg := LoggerConfig{}
	if len(config) > 0 {
		cfg = config[0]
	}

	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		log := cfg.Logger
		if log == nil {
			log = logger.Get()
		}

		start := time.Now()
		err := c.Next()
		latency := time.Since(start)

		status := c.Response().StatusCode()
		event := log.Info()
		if err != nil || status >= fiber.StatusInternalServerError {
			event = log.Error().Err(err)
		}

		event = event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Str("ip", c.IP()).
			Dur("latency", latency)

		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			event = event.Str("request_id", rid)
		}

		event.Msg("request")

		return err
	}
}

// RequestLogger is the logger middleware with default settings
func RequestLogger() fiber.Handler {
	return NewLogger()
}
