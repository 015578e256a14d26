package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pantryapi/internal/fault"
	"pantryapi/internal/http/middleware"
)

// errorPayload is the standardized error response body.
type errorPayload struct {
	OK        bool   `json:"ok"`
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
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

// writeError writes a standardized JSON error response.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "VALIDATION_ERROR", "NOT_FOUND")
// - message: human-readable safe message
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		OK:        false,
		Error:     message,
		Code:      code,
		RequestID: requestIDFromCtx(c),
	})
}

// writeServiceError maps service-layer errors onto HTTP statuses. Validation
// messages are returned verbatim so the scanner UI can surface them;
// upstream failures are reported by operation name only.
func writeServiceError(c *fiber.Ctx, err error) error {
	var schemaErr *fault.SchemaError
	var upstreamErr *fault.UpstreamError

	switch {
	case fault.IsValidation(err):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, fault.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "record not found")
	case errors.Is(err, fault.ErrNoLabels):
		return writeError(c, fiber.StatusInternalServerError, "NO_LABELS", "no labels could be generated")
	case errors.As(err, &schemaErr):
		return writeError(c, fiber.StatusInternalServerError, "SCHEMA_ERROR", schemaErr.Error())
	case errors.As(err, &upstreamErr):
		return writeError(c, fiber.StatusInternalServerError, "UPSTREAM_ERROR", "failed to "+upstreamErr.Op)
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes
// responses for errors escaping the handlers (bad routes, body limits).
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "BODY_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
