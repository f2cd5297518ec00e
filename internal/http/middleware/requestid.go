package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request ID between services.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is where the request ID lives in fiber locals.
	RequestIDLocalKey = "request_id"
)

// RequestID tags every request with an ID. An incoming X-Request-ID is
// preserved so IDs stay stable across the gateway; otherwise a fresh UUID is
// generated. The ID is stored in locals for handlers and the access log, and
// echoed on the response header.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}
