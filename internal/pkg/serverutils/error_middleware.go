package serverutils

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned by handlers into the JSON envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		code, message := statusOf(err)
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

// ErrorHandler is the fiber.Config variant, for errors raised outside the middleware chain.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code, message := statusOf(err)
	return ctx.Status(code).JSON(ErrorResponse(code, message))
}

func statusOf(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, appErr.Error()
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return fiber.StatusBadRequest, ValidationMessage(validationErrs)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	return fiber.StatusInternalServerError, "Internal server error"
}
