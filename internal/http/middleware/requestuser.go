package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestUserHeader carries the authenticated user ID, set by the
	// upstream gateway after token verification.
	RequestUserHeader = "X-User-ID"
	// RequestUserLocalKey is the key under which the user ID is stored in
	// Fiber's context locals.
	RequestUserLocalKey = "request_user"
)

// RequestUser extracts the authenticated user ID from the request header and
// stores it in context locals. Requests without a valid user ID are rejected;
// authentication itself is out of scope for this service.
func RequestUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestUserHeader)
		if _, err := uuid.Parse(id); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "missing or invalid user id")
		}
		c.Locals(RequestUserLocalKey, id)
		return c.Next()
	}
}
