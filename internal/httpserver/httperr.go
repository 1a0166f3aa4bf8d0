package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/techstore/techstore/internal/cart"
	"github.com/techstore/techstore/internal/catalog"
	"github.com/techstore/techstore/internal/checkout"
	"github.com/techstore/techstore/internal/session"
)

// httpError maps the service sentinels onto status codes. Anything
// unrecognized is a 500 with the detail kept out of the response.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, catalog.ErrValidation),
		errors.Is(err, session.ErrValidation),
		errors.Is(err, cart.ErrValidation),
		errors.Is(err, checkout.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, cart.ErrAuthRequired),
		errors.Is(err, checkout.ErrAuthRequired),
		errors.Is(err, session.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, session.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrDuplicateEmail),
		errors.Is(err, checkout.ErrEmptyCart):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
