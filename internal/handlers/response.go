package handlers

import (
	"errors"
	"fmt"

	"shopcart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Response is the envelope of every API response.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func respondOK(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondFail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{
		Success: false,
		Message: message,
	})
}

// StatusFor maps a service error kind to its HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err as a failed envelope. Internal errors also carry
// the underlying error text.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	status := StatusFor(err)
	resp := Response{Success: false, Message: err.Error()}

	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		resp.Message = svcErr.Message
		if status == fiber.StatusInternalServerError && svcErr.Err != nil {
			resp.Error = svcErr.Err.Error()
		}
	} else if status == fiber.StatusInternalServerError {
		resp.Message = "Internal server error"
		resp.Error = err.Error()
	}

	if status == fiber.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
	}
	return c.Status(status).JSON(resp)
}

// bind decodes the request body into out and validates it when validate
// is non-nil. It returns false after writing a 400 response.
func bind(c *fiber.Ctx, validate *validator.Validate, out interface{}) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(Response{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
	}
	if validate == nil {
		return true, nil
	}
	if err := validate.Struct(out); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return false, respondFail(c, fiber.StatusBadRequest, "Validation failed")
		}
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(Response{
			Success: false,
			Message: "Validation failed",
			Errors:  errorMessages,
		})
	}
	return true, nil
}

// ErrorHandler renders errors that escape the handlers, such as unknown
// routes, using the standard envelope.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return respondFail(c, fe.Code, fe.Message)
		}
		return respondError(c, log, err)
	}
}
