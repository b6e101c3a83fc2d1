// Package response renders the uniform JSON envelope used by every
// endpoint of the API. No handler returns a bare array or scalar at the
// top level.
package response

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Body is the response envelope. StatusCode duplicates the transport status
// so clients can inspect it from the body alone; Data, Message and Errors
// are omitted when empty.
type Body struct {
	Timestamp  time.Time `json:"timestamp"`
	StatusCode int       `json:"status_code"`
	Data       any       `json:"data,omitempty"`
	Message    string    `json:"message,omitempty"`
	Errors     []string  `json:"errors,omitempty"`
}

// JSON writes the envelope with the given transport status. Timestamp and
// StatusCode are filled in here so handlers never set them by hand.
func JSON(c *fiber.Ctx, status int, body Body) error {
	body.Timestamp = time.Now()
	body.StatusCode = status
	return c.Status(status).JSON(body)
}

// Data writes a success envelope carrying data and a message.
func Data(c *fiber.Ctx, status int, data any, message string) error {
	return JSON(c, status, Body{Data: data, Message: message})
}

// Error writes a failure envelope with a message and optional error details.
func Error(c *fiber.Ctx, status int, message string, errs ...string) error {
	return JSON(c, status, Body{Message: message, Errors: errs})
}
