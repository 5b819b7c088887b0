package middleware

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Logger logs each HTTP request as one JSON line with method, path, status and latency
// (milliseconds). request_id is added from the user context when RequestID runs first.
func Logger(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		log.LogAttrs(c.UserContext(), slog.LevelInfo, "http_request",
			slog.String("method", c.Method()),
			// Path only, no query string.
			slog.String("path", c.Path()),
			slog.Int("status", responseStatus(c, err)),
			slog.Float64("latency", float64(time.Since(start).Microseconds())/1000),
		)

		return err
	}
}

// responseStatus reports the status the client will see. The global error handler has not run
// yet when err is non-nil, so it is derived from err.
func responseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
