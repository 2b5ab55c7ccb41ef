package http_server

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger logs one line per request, warning on client errors and erroring on server errors.
// Requests to skipPaths are not logged.
func NewLogger(skipPaths ...string) fiber.Handler {
	skip := map[string]bool{}
	for _, path := range skipPaths {
		skip[path] = true
	}

	return func(c *fiber.Ctx) (err error) {
		startTime := time.Now()
		err = c.Next()

		if skip[c.Path()] {
			return err
		}

		msg := "HTTP Request"
		if err != nil {
			msg = err.Error()

			// let fiber render the error before logging the final status
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				c.Status(fiber.StatusInternalServerError)
			}
		}

		code := c.Response().StatusCode()

		ipAddress := c.IP()

		if cloudflareConnectingIP := c.Get("CF-Connecting-IP", ""); cloudflareConnectingIP != "" {
			ipAddress = cloudflareConnectingIP
		}

		requestLogger := log.With().
			Int("status", code).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", ipAddress).
			Str("latency", time.Since(startTime).String()).
			Int("bytes", len(c.Response().Body())).
			Str("user-agent", c.Get(fiber.HeaderUserAgent)).
			Logger()

		levelFor(code, &requestLogger).Msg(msg)

		return nil
	}
}

func levelFor(code int, logger *zerolog.Logger) *zerolog.Event {
	switch {
	case code >= fiber.StatusBadRequest && code < fiber.StatusInternalServerError:
		return logger.Warn()
	case code >= http.StatusInternalServerError:
		return logger.Error()
	default:
		return logger.Info()
	}
}
