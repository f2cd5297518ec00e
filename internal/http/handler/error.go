package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"okrhub/internal/access"
	"okrhub/internal/http/middleware"
	"okrhub/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeDomainError maps the service-layer error kinds onto transport
// responses. The service never translates its own errors; this is the single
// place where that mapping lives.
func writeDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrDocumentNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrDirectReportNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())

	case errors.Is(err, service.ErrLinkOrFileRequired),
		errors.Is(err, service.ErrFileExtensionNotAllowed),
		errors.Is(err, service.ErrInvalidPriority),
		errors.Is(err, service.ErrInvalidStatus):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())

	case errors.Is(err, service.ErrPrivateDelegateCreate),
		errors.Is(err, service.ErrOwnerStatusConflict),
		errors.Is(err, access.ErrNoWriteAccess):
		return writeError(c, fiber.StatusForbidden, "PERMISSION_DENIED", err.Error())

	case errors.Is(err, service.ErrNotSameCompany):
		return writeError(c, fiber.StatusForbidden, "NOT_SAME_COMPANY", err.Error())

	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", "authentication required")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
