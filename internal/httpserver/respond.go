package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tablegames/shop/internal/service"
)

// The storefront expects every JSON body to carry a string "code"
// mirroring the HTTP status next to the payload.

func respond(c echo.Context, status int, payload echo.Map) error {
	payload["code"] = strconv.Itoa(status)
	return c.JSON(status, payload)
}

func message(c echo.Context, status int, msg string) error {
	return respond(c, status, echo.Map{"message": msg})
}

func fail(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrPermission):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	}
	return message(c, status, err.Error())
}
