package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"calldash/internal/model"
	"calldash/internal/service"
)

// CreateExport godoc
// @Summary Export callers as CSV
// @Description Walks every matching page and stores a CSV in object storage. The response carries a presigned download URL.
// @Tags exports
// @Accept json
// @Produce json
// @Param filter body model.CallerFilter false "filter"
// @Success 201 {object} model.Export
// @Failure 400 {object} errorPayload
// @Failure 413 {object} errorPayload
// @Router /exports/callers [post]
func CreateExport(svc service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var filter model.CallerFilter
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&filter); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "body must be a JSON filter")
			}
		}
		exp, err := svc.Export(c.UserContext(), filter)
		if err != nil {
			if errors.Is(err, service.ErrExportTooLarge) {
				return writeError(c, fiber.StatusRequestEntityTooLarge, "EXPORT_TOO_LARGE", "too many matching callers, narrow the filter")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(exp)
	}
}

// DownloadExport godoc
// @Summary Download export
// @Tags exports
// @Produce text/csv
// @Param name path string true "export file name"
// @Success 200 {file} file
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /exports/{name} [get]
func DownloadExport(svc service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("name")
		rc, info, err := svc.Open(c.UserContext(), name)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidExportName):
				return writeError(c, fiber.StatusBadRequest, "INVALID_NAME", "invalid export name")
			case errors.Is(err, service.ErrExportNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "export not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		ct := info.ContentType
		if ct == "" {
			ct = "text/csv"
		}
		c.Set(fiber.HeaderContentType, ct)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
		// fasthttp closes rc once the body is written.
		return c.SendStream(rc, int(info.Size))
	}
}
