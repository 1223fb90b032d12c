package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/service"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/util"
)

// writeServiceError maps service sentinels onto HTTP statuses. Anything
// unrecognised is logged and reported as a bare 500.
func writeServiceError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrDestinationNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrDistrictNotFound),
		errors.Is(err, service.ErrGalleryImageNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrImageTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrImageUnsupportedType):
		status = http.StatusUnsupportedMediaType
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrSlugConflict),
		errors.Is(err, service.ErrNameConflict),
		errors.Is(err, service.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		requestLog(c).WithError(err).Error("unhandled service error")
		return c.JSON(status, util.Error("internal error"))
	}
	return c.JSON(status, util.Error(err.Error()))
}
