package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/afectacion-api/internal/application/dto"
	"github.com/jhoicas/afectacion-api/internal/domain"
)

var errMissingFile = errors.New("archivo requerido (campo 'archivo')")

// statusFor traduce un error del caso de uso a código HTTP y código de error de la API.
func statusFor(err error) (int, string) {
	var missing *domain.MissingColumnsError
	var processing *domain.ProcessingError
	switch {
	case errors.Is(err, errMissingFile):
		return fiber.StatusBadRequest, "MISSING_FILE"
	case errors.As(err, &missing):
		return fiber.StatusUnprocessableEntity, "MISSING_COLUMNS"
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return fiber.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT"
	case errors.As(err, &processing):
		return fiber.StatusUnprocessableEntity, "PROCESSING_ERROR"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// writeError responde el error en JSON. Faltan columnas -> incluye required/missing.
func writeError(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)
	var missing *domain.MissingColumnsError
	if errors.As(err, &missing) {
		return c.Status(status).JSON(dto.MissingColumnsResponse{
			Code:     code,
			Message:  err.Error(),
			Required: missing.Required,
			Missing:  missing.Missing,
		})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
