package utils

import (
	apperrors "catatuang/internal/errors"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    interface{}         `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Respond sends a JSON response with the specified status code.
func Respond(c *fiber.Ctx, status int, body Envelope) error {
	return c.Status(status).JSON(body)
}

// Success sends a successful JSON response.
func Success(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusOK, Envelope{Success: true, Data: data})
}

// Created sends a 201 with the new resource.
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return Respond(c, fiber.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Message sends a 200 carrying only a message.
func Message(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusOK, Envelope{Success: true, Message: message})
}

// Fail sends an error envelope.
func Fail(c *fiber.Ctx, status int, message string) error {
	return Respond(c, status, Envelope{Success: false, Message: message})
}

// BadRequest sends a JSON error response with status 400.
func BadRequest(c *fiber.Ctx, message string) error {
	return Fail(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a JSON error response with status 401.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Fail(c, fiber.StatusUnauthorized, message)
}

// NotFound sends a JSON error response with status 404.
func NotFound(c *fiber.Ctx, message string) error {
	return Fail(c, fiber.StatusNotFound, message)
}

// InternalError sends a JSON error response with status 500.
func InternalError(c *fiber.Ctx, message string) error {
	return Fail(c, fiber.StatusInternalServerError, message)
}

// ValidationFailed sends a 422 with per-field messages.
func ValidationFailed(c *fiber.Ctx, fields map[string][]string) error {
	return Respond(c, fiber.StatusUnprocessableEntity, Envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  fields,
	})
}

// StatusOf maps a domain error kind to its HTTP status.
func StatusOf(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return fiber.StatusUnprocessableEntity
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindConflict:
		return fiber.StatusConflict
	case apperrors.KindUnauthorized:
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}

// Error writes err as an envelope. Anything that is not a DomainError, and
// every internal error, is answered with a generic message.
func Error(c *fiber.Ctx, err error) error {
	de, ok := apperrors.As(err)
	if !ok {
		return InternalError(c, "Internal server error")
	}
	if de.Kind == apperrors.KindValidation {
		return ValidationFailed(c, de.Fields)
	}
	return Fail(c, StatusOf(de.Kind), de.Message)
}
