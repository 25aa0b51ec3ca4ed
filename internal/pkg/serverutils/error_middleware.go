package serverutils

import (
	"github.com/gofiber/fiber/v2"

	"checkinly-be/internal/pkg/apperr"
)

// ErrorHandlerMiddleware maps domain errors bubbling out of controllers to
// HTTP statuses. Anything unrecognized becomes a 500 with a generic message
// so provider/database internals never leak to callers.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		switch {
		case apperr.IsValidation(err):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, err.Error()))
		case apperr.IsNotFound(err):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(fiber.StatusNotFound, err.Error()))
		case apperr.IsAlreadyRefunded(err), apperr.IsConflict(err):
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(fiber.StatusConflict, err.Error()))
		case apperr.IsPayment(err):
			return ctx.Status(fiber.StatusPaymentRequired).JSON(ErrorResponse(fiber.StatusPaymentRequired, err.Error()))
		case apperr.IsSignature(err):
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, err.Error()))
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error"))
	}
}
