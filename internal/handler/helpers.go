package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/orghub/orghub-api/internal/middleware"
	"github.com/orghub/orghub-api/internal/models"
	"github.com/orghub/orghub-api/internal/service"
	"github.com/orghub/orghub-api/internal/utils"
)

// resolveActor loads the authenticated member for the active request. Every
// protected route resolves the actor once, up front, before business logic
// runs.
func resolveActor(c *fiber.Ctx, members service.MemberService) (models.Member, error) {
	email := middleware.AuthenticatedEmail(c)
	if email == "" {
		return models.Member{}, service.ErrPermissionDenied
	}
	return members.ResolveMember(c.Context(), email)
}

// sendServiceError maps service-layer errors onto HTTP responses. Unknown
// errors are logged and reported as internal failures.
func sendServiceError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		return utils.SendError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrPortfolioNotFound),
		errors.Is(err, service.ErrMemberNotFound),
		errors.Is(err, service.ErrSubmissionNotFound),
		errors.Is(err, service.ErrShoutoutNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidRequest):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &validationErrors):
		details := make(map[string]string, len(validationErrors))
		for _, fieldError := range validationErrors {
			details[fieldError.Field()] = fieldError.Tag()
		}
		return utils.SendErrorWithDetails(c, fiber.StatusBadRequest, "validation failed", details)
	default:
		logger.Error().Err(err).Str("correlation_id", middleware.GetCorrelationID(c)).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
