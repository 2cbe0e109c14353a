package serverutils

import (
	"errors"

	"ai-mathteach-be/internal/pkg/apperrors"
	"ai-mathteach-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts service errors into the response envelope.
// Controllers just return errors; the taxonomy decides the status code.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var (
			validationErr *apperrors.ValidationError
			generationErr *apperrors.GenerationError
			persistErr    *apperrors.PersistenceError
			transitionErr *apperrors.InvalidTransitionError
			notFoundErr   *apperrors.NotFoundError
			forbiddenErr  *apperrors.ForbiddenError
			limitErr      *apperrors.LimitExceededError
			fiberErr      *fiber.Error
		)

		switch {
		case errors.As(err, &validationErr):
			return ctx.Status(fiber.StatusBadRequest).JSON(FailureResponse(fiber.StatusBadRequest, validationErr.Error()))

		case errors.As(err, &limitErr):
			return ctx.Status(fiber.StatusTooManyRequests).JSON(Response[*apperrors.LimitExceededError]{
				Success: false,
				Error: &ErrorBody{
					Code:    fiber.StatusTooManyRequests,
					Message: limitErr.Error(),
				},
				Data: limitErr,
			})

		case errors.As(err, &generationErr):
			log.Error("ErrorHandler", "Generation failure", map[string]interface{}{
				"path":  ctx.Path(),
				"error": generationErr.Error(),
			})
			return ctx.Status(fiber.StatusBadGateway).JSON(FailureResponse(fiber.StatusBadGateway, generationErr.Error()))

		case errors.As(err, &transitionErr):
			return ctx.Status(fiber.StatusConflict).JSON(FailureResponse(fiber.StatusConflict, transitionErr.Error()))

		case errors.As(err, &notFoundErr):
			return ctx.Status(fiber.StatusNotFound).JSON(FailureResponse(fiber.StatusNotFound, notFoundErr.Error()))

		case errors.As(err, &forbiddenErr):
			return ctx.Status(fiber.StatusForbidden).JSON(FailureResponse(fiber.StatusForbidden, forbiddenErr.Error()))

		case errors.As(err, &persistErr):
			log.Error("ErrorHandler", "Persistence failure", map[string]interface{}{
				"path":  ctx.Path(),
				"error": persistErr.Error(),
			})
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(FailureResponse(fiber.StatusServiceUnavailable, "Storage temporarily unavailable"))

		case errors.As(err, &fiberErr):
			return ctx.Status(fiberErr.Code).JSON(FailureResponse(fiberErr.Code, fiberErr.Message))

		default:
			log.Error("ErrorHandler", "Unhandled error", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
			return ctx.Status(fiber.StatusInternalServerError).JSON(FailureResponse(fiber.StatusInternalServerError, "Internal server error"))
		}
	}
}
