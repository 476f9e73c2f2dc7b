package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bilgisen/daoexplorer/internal/logger"
	"github.com/gofiber/fiber/v2"
)

// GenericErrorNotice is flashed when an HTML route fails unexpectedly
const GenericErrorNotice = "An internal error occurred. Please try again."

// IsAPIPath reports whether the request targets the JSON API
func IsAPIPath(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/")
}

// NewErrorHandler maps unhandled errors to a JSON body on API routes and
// to a redirect to the input form with a notice elsewhere.
func NewErrorHandler(flash *Flash) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
		}

		logger.Get().Error().
			Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", code).
			Msg("HTTP error")

		if IsAPIPath(c) {
			message := http.StatusText(code)
			if code >= fiber.StatusInternalServerError {
				message = "Internal server error"
			}
			return c.Status(code).JSON(fiber.Map{
				"error": message,
			})
		}

		if code < fiber.StatusInternalServerError || c.Path() == "/" || flash == nil {
			return c.Status(code).SendString(http.StatusText(code))
		}

		if ferr := flash.Add(c, NoticeError, GenericErrorNotice); ferr != nil {
			logger.Get().Warn().Err(ferr).Msg("Failed to store error notice")
		}
		return c.Redirect("/", fiber.StatusFound)
	}
}

// NewErrorScope runs handler on errors returned further down the chain.
// Register it after encryptcookie so notices stored while handling the
// error are written with encrypted cookies.
func NewErrorScope(handler fiber.ErrorHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return handler(c, err)
		}
		return nil
	}
}
