package httperr

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Responder is implemented by errors that produce their own HTTP response.
// The builder delegates to it instead of writing the default envelope.
type Responder interface {
	Respond(c *fiber.Ctx) error
}

type envelope struct {
	Success bool    `json:"success"`
	Error   payload `json:"error"`
}

type payload struct {
	Message    string         `json:"message"`
	StatusCode int            `json:"statusCode"`
	Type       string         `json:"type"`
	Timestamp  string         `json:"timestamp"`
	Code       string         `json:"code,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	Stack      string         `json:"stack,omitempty"`
}

// Handler returns the fiber error handler that normalizes every failure into
// the response envelope. It is the terminal sink for all error paths and
// never fails itself; dev controls stack-trace disclosure.
func Handler(dev bool, logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if r, ok := err.(Responder); ok {
			return r.Respond(c)
		}

		p := payload{
			Message:    "Internal Server Error",
			StatusCode: fiber.StatusInternalServerError,
			Type:       TypeServer,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
		}

		var appErr *Error
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr):
			p.Message = appErr.Message
			if appErr.StatusCode != 0 {
				p.StatusCode = appErr.StatusCode
			}
			if appErr.Type != "" {
				p.Type = appErr.Type
			}
			if !appErr.Timestamp.IsZero() {
				p.Timestamp = appErr.Timestamp.Format(time.RFC3339)
			}
			p.Code = appErr.Code
			p.Details = sanitize(appErr.Details)
			if dev && len(appErr.stack) > 0 {
				p.Stack = string(appErr.stack)
			}
		case errors.As(err, &fiberErr):
			p.Message = fiberErr.Message
			p.StatusCode = fiberErr.Code
		default:
			if err != nil && dev {
				p.Message = err.Error()
			}
		}

		if logger != nil && p.StatusCode >= fiber.StatusInternalServerError {
			logger.Error("request failed", slog.Int("status", p.StatusCode), slog.Any("error", err))
		}

		return c.Status(p.StatusCode).JSON(envelope{Success: false, Error: p})
	}
}

// sanitize strips credential material from error details, however it got
// there, and leaves the caller's map untouched.
func sanitize(details map[string]any) map[string]any {
	if len(details) == 0 {
		return nil
	}
	out := make(map[string]any, len(details))
	for k, v := range details {
		if k == "password" || k == "token" {
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
