package api

import (
	"time"

	"github.com/bilgisen/daoexplorer/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AppConfig holds the server-level settings of the fiber app
type AppConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// CookieKey is a base64 AES key; empty disables cookie encryption.
	CookieKey string
}

// NewApp builds the fiber app with middleware and routes.
func NewApp(h *Handlers, cfg AppConfig) *fiber.App {
	errorHandler := middleware.NewErrorHandler(h.flash)
	app := fiber.New(fiber.Config{
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		IdleTimeout:           120 * time.Second,
		ErrorHandler:          errorHandler,
		Views:                 NewViews(),
		DisableStartupMessage: true,
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(middleware.RequestLogger())
	if cfg.CookieKey != "" {
		app.Use(encryptcookie.New(encryptcookie.Config{
			Key: cfg.CookieKey,
		}))
	}
	// Errors and panics are mapped inside the cookie encryption scope
	app.Use(middleware.NewErrorScope(errorHandler))
	app.Use(recover.New())

	SetupRoutes(app, h)
	return app
}

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, h *Handlers) {
	app.Get("/", h.Index)
	app.Post("/proposals", h.Proposals)

	api := app.Group("/api")
	api.Get("/proposals", h.APIProposals)
	api.Get("/daos", h.APISpaces)

	app.Get("/health", h.HealthCheck)
	app.Get("/health/ai", h.AIHealth)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// 404 Handler
	app.Use(h.NotFound)
}
