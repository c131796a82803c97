package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"calldash/internal/model"
	"calldash/internal/service"
)

func callerFilterFromQuery(c *fiber.Ctx) model.CallerFilter {
	return model.CallerFilter{
		Organization: c.Query("organization"),
		Tag:          c.Query("tag"),
		Search:       c.Query("search"),
	}
}

// ListCallers godoc
// @Summary List callers
// @Description One page of the caller-analysis table, newest activity first. limit is clamped to [10,1000].
// @Tags callers
// @Produce json
// @Param page query int false "page number, 1-based" default(1)
// @Param limit query int false "page size" default(100)
// @Param organization query string false "exact organization"
// @Param tag query string false "tag"
// @Param search query string false "phone number or display name substring"
// @Success 200 {object} pagination.Response[model.Caller]
// @Failure 400 {object} errorPayload
// @Router /callers [get]
func ListCallers(svc service.CallerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil || page < 1 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "page must be a positive integer")
		}
		limit, err := strconv.Atoi(c.Query("limit", "0"))
		if err != nil || limit < 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}

		res, err := svc.List(c.UserContext(), page, limit, callerFilterFromQuery(c))
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// GetCaller godoc
// @Summary Get caller
// @Tags callers
// @Produce json
// @Param id path string true "caller id (uuid)"
// @Success 200 {object} model.Caller
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /callers/{id} [get]
func GetCaller(svc service.CallerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		caller, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "caller not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(caller)
	}
}

// CreateCaller godoc
// @Summary Register caller
// @Tags callers
// @Accept json
// @Produce json
// @Param caller body service.CreateCallerInput true "caller"
// @Success 201 {object} model.Caller
// @Failure 400 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router /callers [post]
func CreateCaller(svc service.CallerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CreateCallerInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "body must be a JSON caller")
		}
		caller, err := svc.Create(c.UserContext(), in)
		if err != nil {
			if errors.Is(err, service.ErrInvalidInput) {
				return writeError(c, fiber.StatusUnprocessableEntity, "VALIDATION_FAILED", "caller failed validation")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(caller)
	}
}

// DeleteCaller godoc
// @Summary Delete caller
// @Tags callers
// @Param id path string true "caller id (uuid)"
// @Success 204
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /callers/{id} [delete]
func DeleteCaller(svc service.CallerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "caller not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
