package handlers

import (
	"errors"

	"kpi-dashboard/internal/core/domain"
	"kpi-dashboard/internal/pkg/pagination"
	"kpi-dashboard/internal/pkg/response"
	"kpi-dashboard/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// respondError maps service errors to HTTP responses. Unknown errors are
// logged and reported as 500 without details.
func respondError(c *fiber.Ctx, log logrus.FieldLogger, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return response.Error(c, fiber.StatusUnprocessableEntity, domain.MessageOf(err, "Validation failed"))
	case errors.Is(err, domain.ErrBadRequest):
		return response.BadRequest(c, domain.MessageOf(err, "Bad request"))
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, domain.MessageOf(err, "Unauthorized"))
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, domain.MessageOf(err, "You don't have permission to access this resource"))
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, domain.MessageOf(err, "Resource not found"))
	case errors.Is(err, domain.ErrConflict):
		return response.Conflict(c, domain.MessageOf(err, "Resource already exists"))
	default:
		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).Error("Request failed")
		return response.InternalServerError(c, "Internal server error")
	}
}

// bind parses the JSON body into dst and validates it. On failure the
// response is already written and ok is false.
func bind(c *fiber.Ctx, dst interface{}) (ok bool, err error) {
	if err := c.BodyParser(dst); err != nil {
		return false, response.BadRequest(c, "Invalid request body")
	}
	if errs := validator.Struct(dst); errs != nil {
		return false, response.ValidationError(c, errs)
	}
	return true, nil
}

// paginated writes a list response with its pagination block
func paginated(c *fiber.Ctx, data interface{}, page *pagination.Params, total int64) error {
	return response.Paginated(c, data, page.Meta(total))
}
