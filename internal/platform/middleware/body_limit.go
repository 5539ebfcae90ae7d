package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DefaultMaxBodyBytes bounds request bodies. Chat messages and canvas payloads
// are small; anything larger is rejected before JSON decoding.
const DefaultMaxBodyBytes int64 = 1 << 20 // 1 MiB

// BodyLimit returns middleware that rejects requests whose declared
// Content-Length exceeds maxBytes and caps reads on bodies of unknown length.
func BodyLimit(maxBytes int64) echo.MiddlewareFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.ContentLength > maxBytes {
				return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "request body too large")
			}
			req.Body = http.MaxBytesReader(c.Response(), req.Body, maxBytes)
			return next(c)
		}
	}
}
